// internal/workers/transfer/validate-transfer-profile/models.go
package validatetransferprofile

import "kingdom-workers/internal/common/validation"

type Input struct {
	ProfileData map[string]interface{} `json:"profileData"`
}

type Output struct {
	IsValid          bool                         `json:"isValid"`
	ValidatedProfile map[string]interface{}       `json:"validatedProfile"`
	ValidationErrors []validation.ValidationError `json:"validationErrors"`
}
