package contracts

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/labstack/echo"
)

// DefaultFactor applies when the request omits factor
const DefaultFactor = 1.0

type ProcessRequest struct {
	FileID     *string  `json:"file_id"`
	EffectType *string  `json:"effect_type"`
	Factor     *float64 `json:"factor,omitempty"`
}

func (pr *ProcessRequest) ExtractFromHTTP(c echo.Context) error {
	request := c.Request()
	err := json.NewDecoder(request.Body).Decode(pr)
	if err != nil {
		return err
	}
	return nil
}

// Validate checks the request and fills the default factor. The effect type is
// checked once the upload has been found.
func (pr *ProcessRequest) Validate() error {
	if pr.FileID == nil || len(*pr.FileID) <= 0 {
		return errors.New("file_id parameter is missing or empty")
	}
	if _, err := uuid.Parse(*pr.FileID); err != nil {
		return errors.New("file_id is not a valid id")
	}
	if pr.EffectType == nil {
		empty := ""
		pr.EffectType = &empty
	}
	if pr.Factor == nil {
		factor := DefaultFactor
		pr.Factor = &factor
	}
	if !(*pr.Factor > 0) {
		return errors.New("factor must be greater than 0")
	}
	return nil
}
