package heritageapi

import (
	"context"
	"encoding/json"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	heritage "github.com/mutablelogic/go-heritage"
	tool "github.com/mutablelogic/go-heritage/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type textRecord struct {
	catalog *Catalog
}

type restoration struct {
	restorer *Restorer
}

var _ tool.Tool = (*textRecord)(nil)
var _ tool.Tool = (*restoration)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	TextRecordToolName  = "get_heritage_text_record"
	RestorationToolName = "call_3d_restoration_api"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTools returns the record lookup and restoration tools for use with the agent
func NewTools(catalog *Catalog, restorer *Restorer) ([]tool.Tool, error) {
	if catalog == nil {
		return nil, heritage.ErrBadParameter.With("missing catalog")
	}
	if restorer == nil {
		restorer = NewRestorer("", nil)
	}
	return []tool.Tool{
		&textRecord{catalog: catalog},
		&restoration{restorer: restorer},
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// TEXT RECORD

func (*textRecord) Name() string {
	return TextRecordToolName
}

func (*textRecord) Description() string {
	return "지역 및 구조물 이름을 사용하여 역사 기록 텍스트를 검색하고 원본 이미지 URL을 반환합니다."
}

// Return the JSON schema for the tool input
func (*textRecord) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[TextRecordRequest](nil)
}

// Run the tool with the given input
func (t *textRecord) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req TextRecordRequest
	if err := decode(input, &req); err != nil {
		return nil, err
	} else if err := req.Validate(); err != nil {
		return nil, err
	}
	return t.catalog.Lookup(req.Location, req.StructureName), nil
}

///////////////////////////////////////////////////////////////////////////////
// RESTORATION

func (*restoration) Name() string {
	return RestorationToolName
}

func (*restoration) Description() string {
	return "상세한 묘사를 기반으로 3D 모델 또는 복원 이미지를 생성하는 API를 호출하고 결과를 반환합니다."
}

// Return the JSON schema for the tool input
func (*restoration) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[RestorationRequest](nil)
}

// Run the tool with the given input
func (r *restoration) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req RestorationRequest
	if err := decode(input, &req); err != nil {
		return nil, err
	} else if err := req.Validate(); err != nil {
		return nil, err
	}
	return r.restorer.Restore(ctx, req.Description, req.LocationData), nil
}
