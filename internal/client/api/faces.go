package api

import (
	"encoding/json"
	"fmt"
)

// Box is a face bounding box in relative image coordinates (0..1).
type Box struct {
	TopRow    float64 `json:"top_row"`
	LeftCol   float64 `json:"left_col"`
	BottomRow float64 `json:"bottom_row"`
	RightCol  float64 `json:"right_col"`
}

type detectResponse struct {
	Outputs []struct {
		Data struct {
			Regions []struct {
				RegionInfo struct {
					BoundingBox Box `json:"bounding_box"`
				} `json:"region_info"`
			} `json:"regions"`
		} `json:"data"`
	} `json:"outputs"`
}

// FaceBoxes extracts the bounding boxes of the first output of a detection
// response. A response without outputs yields no boxes.
func FaceBoxes(raw json.RawMessage) ([]Box, error) {
	var r detectResponse
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpected, err)
	}
	if len(r.Outputs) == 0 {
		return nil, nil
	}

	regions := r.Outputs[0].Data.Regions
	boxes := make([]Box, 0, len(regions))
	for _, reg := range regions {
		boxes = append(boxes, reg.RegionInfo.BoundingBox)
	}
	return boxes, nil
}
