package errors

var (
	ErrPropertyNotFound = &DomainError{
		Code:    "PROPERTY_NOT_FOUND",
		Message: "property not found",
	}
	ErrProjectNotFound = &DomainError{
		Code:    "PROJECT_NOT_FOUND",
		Message: "project not found",
	}
	ErrNotOwner = &DomainError{
		Code:    "NOT_OWNER",
		Message: "you do not have permission to modify this listing",
	}
	ErrNotCreator = &DomainError{
		Code:    "NOT_CREATOR",
		Message: "you do not have permission to modify this project",
	}
	ErrDuplicateListing = &DomainError{
		Code:    "DUPLICATE_LISTING",
		Message: "you already have an active property listing with this address",
	}
	ErrFavoriteNotFound = &DomainError{
		Code:    "FAVORITE_NOT_FOUND",
		Message: "property not in favorites",
	}
	ErrSeekerOnly = &DomainError{
		Code:    "SEEKER_ONLY",
		Message: "only property seekers can send inquiries",
	}
)
