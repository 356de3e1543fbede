package group

type (
	groupInput struct {
		Name        string `json:"name"        validate:"required,max=255"`
		Code        string `json:"code"        validate:"required,max=100"`
		Description string `json:"description"`
		IsActive    *bool  `json:"is_active"`
		Version     string `json:"version"     validate:"max=50"`
	}

	statusInput struct {
		IDs      []uint `json:"ids"       validate:"required,min=1"`
		IsActive *bool  `json:"is_active" validate:"required"`
	}

	deleteResult struct {
		Deleted        bool  `json:"deleted"`
		DeletedEntries int64 `json:"deleted_entries"`
	}

	statusResult struct {
		Updated int64 `json:"updated"`
	}
)
