package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFaceBoxes(t *testing.T) {
	raw := json.RawMessage(`{
		"status": {"code": 10000},
		"outputs": [{"data": {"regions": [
			{"region_info": {"bounding_box": {"top_row": 0.1, "left_col": 0.2, "bottom_row": 0.5, "right_col": 0.6}}},
			{"region_info": {"bounding_box": {"top_row": 0.3, "left_col": 0.4, "bottom_row": 0.9, "right_col": 0.8}}}
		]}}]
	}`)

	boxes, err := FaceBoxes(raw)
	require.NoError(t, err)
	require.Len(t, boxes, 2)
	assert.Equal(t, Box{TopRow: 0.1, LeftCol: 0.2, BottomRow: 0.5, RightCol: 0.6}, boxes[0])
}

func TestFaceBoxes_OmittedEdgesAreZero(t *testing.T) {
	raw := json.RawMessage(`{"outputs":[{"data":{"regions":[{"region_info":{"bounding_box":{"bottom_row":0.5,"right_col":1}}}]}}]}`)

	boxes, err := FaceBoxes(raw)
	require.NoError(t, err)
	assert.Equal(t, []Box{{BottomRow: 0.5, RightCol: 1}}, boxes)
}

func TestFaceBoxes_Empty(t *testing.T) {
	boxes, err := FaceBoxes(json.RawMessage(`{"outputs":[]}`))
	require.NoError(t, err)
	assert.Empty(t, boxes)

	_, err = FaceBoxes(json.RawMessage(`nope`))
	assert.ErrorIs(t, err, ErrUnexpected)
}
