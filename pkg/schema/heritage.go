package schema

import (
	"fmt"
	"strings"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

// RestorePending is shown while a restoration is in progress
const RestorePending = "AI 에이전트가 역사 기록을 검색하고 복원 명령을 생성 중입니다..."

////////////////////////////////////////////////////////////////////////////////
// TYPES

// HeritageRecord is the result of looking up the historical record of a structure
type HeritageRecord struct {
	Status           string `json:"status"`
	TextRecord       string `json:"text_record"`
	OriginalImageURL string `json:"original_image_url,omitempty"`
}

// Restoration is the result of requesting a restored model or image
type Restoration struct {
	Status      string `json:"status"`
	RestoredURL string `json:"restored_url,omitempty"`
}

// RestoreRequest describes the structure to analyse and restore
type RestoreRequest struct {
	Location      string `json:"location,omitempty" name:"location" help:"Region where the structure is located" default:"서울 종로"`
	StructureName string `json:"structure_name" name:"structure" help:"Name or features of the structure" default:"경복궁 사정전"`
	LocationData  string `json:"location_data,omitempty" name:"location-data" help:"Terrain data for the site" default:"평지"`
	Prompt        string `json:"prompt,omitempty" name:"prompt" help:"Analysis and restoration request (defaults to a prompt built from the structure name)"`
	Model         string `json:"model,omitempty" kong:"-"`
}

// RestoreResponse is the outcome of a restoration run
type RestoreResponse struct {
	ID          string           `json:"id"`
	Model       string           `json:"model,omitempty"`
	Analysis    string           `json:"analysis"`
	Record      *HeritageRecord  `json:"record,omitempty"`
	Restoration *Restoration     `json:"restoration,omitempty"`
	Calls       []ToolInvocation `json:"calls,omitempty"`
	Usage       Usage            `json:"usage"`
	Result      ResultType       `json:"result"`
}

////////////////////////////////////////////////////////////////////////////////
// CONSTANTS

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// DefaultPrompt returns the analysis and restoration request used when the
// user does not supply one
func DefaultPrompt(structureName string) string {
	return fmt.Sprintf("'%s'의 역사 기록을 검색하고, 그 기록을 바탕으로 복원할 때의 시각적인 묘사를 생성해 줘. 그리고 복원된 모습을 이미지로 시뮬레이션해 줘.", strings.TrimSpace(structureName))
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Success returns true if the record was found
func (r HeritageRecord) Success() bool {
	return r.Status == StatusSuccess
}

// Success returns true if the restoration succeeded
func (r Restoration) Success() bool {
	return r.Status == StatusSuccess
}

// ShowRecord returns true when a historical record was retrieved successfully
func (r RestoreResponse) ShowRecord() bool {
	return r.Record != nil && r.Record.Success()
}

// ShowImages returns true when both the record and the restoration
// succeeded, so original and restored images can be shown side by side
func (r RestoreResponse) ShowImages() bool {
	return r.ShowRecord() && r.Restoration != nil && r.Restoration.Success()
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r HeritageRecord) String() string {
	return types.Stringify(r)
}

func (r Restoration) String() string {
	return types.Stringify(r)
}

func (r RestoreRequest) String() string {
	return types.Stringify(r)
}

func (r RestoreResponse) String() string {
	return types.Stringify(r)
}
