package errors

// Error code constants, format: CATEGORY_SPECIFIC_DETAIL.
// The admin frontend maps these codes to display messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong email/password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthAdminDisabled      = "AUTH_ADMIN_DISABLED"
	AuthSetupDone          = "AUTH_SETUP_DONE" // setup already performed
	AuthEmailExists        = "AUTH_EMAIL_EXISTS"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationRequired     = "VALIDATION_REQUIRED"
	ValidationTooShort     = "VALIDATION_TOO_SHORT"

	// ==================== Company (COMPANY_) ====================
	CompanyNotFound = "COMPANY_NOT_FOUND"

	// ==================== Upload/Files (FILE_) ====================
	FileNotFound    = "FILE_NOT_FOUND"
	FileNoneSent    = "FILE_NONE_SENT"       // no file in the multipart request
	FileTooLarge    = "FILE_TOO_LARGE"       // per-file size ceiling exceeded
	FileUploadError = "FILE_UPLOAD_FAILED"   // storage write failure
	FileStreamError = "FILE_DOWNLOAD_FAILED" // storage read failure

	// ==================== Resource (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalStorageError  = "INTERNAL_STORAGE_ERROR"
)
