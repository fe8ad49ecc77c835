package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrSessionActive      ErrCode = "SESSION_ALREADY_ACTIVE"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden       ErrCode = "FORBIDDEN"
	ErrUserAccessOnly  ErrCode = "USER_ACCESS_ONLY"
	ErrAdminAccessOnly ErrCode = "ADMIN_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Exam-specific ─────────────────────────────────────────────────
	ErrNoQuestions     ErrCode = "NO_QUESTIONS"
	ErrTestNotStarted  ErrCode = "TEST_NOT_STARTED"
	ErrTestFinished    ErrCode = "TEST_FINISHED"
	ErrQuestionChecked ErrCode = "QUESTION_ALREADY_CHECKED"
	ErrAnswerRequired  ErrCode = "ANSWER_REQUIRED"
	ErrUnknownQuestion ErrCode = "UNKNOWN_QUESTION"
	ErrInvalidQuestion ErrCode = "INVALID_QUESTION_INDEX"
	ErrNoActiveSession ErrCode = "NO_ACTIVE_SESSION"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Telefon raqam yoki tug'ilgan yil noto'g'ri."
	case ErrSessionActive:
		return "Siz boshqa qurilmada tizimga kirgansiz."
	case ErrSessionInvalidated:
		return "Sessiyangiz tugadi. Qaytadan kiring."
	case ErrTokenRequired:
		return "Autentifikatsiya tokeni talab qilinadi."
	case ErrTokenInvalid:
		return "Autentifikatsiya tokeni yaroqsiz."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "Bu resursga ruxsatingiz yo'q."
	case ErrUserAccessOnly:
		return "Bu resurs faqat foydalanuvchilar uchun."
	case ErrAdminAccessOnly:
		return "Bu resurs faqat administratorlar uchun."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Tekshiruv muvaffaqiyatsiz. Ma'lumotlarni tekshiring."
	case ErrInvalidID:
		return "ID formati noto'g'ri."
	case ErrInvalidPayload:
		return "So'rov ma'lumotlari yaroqsiz."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Ma'lumot topilmadi."
	case ErrConflict:
		return "Bunday ma'lumot allaqachon mavjud."

	// ─── Exam-specific ─────────────────────────────────────────────────
	case ErrNoQuestions:
		return "Test savollari bazada mavjud emas."
	case ErrTestNotStarted:
		return "Test hali boshlanmagan."
	case ErrTestFinished:
		return "Test allaqachon yakunlangan."
	case ErrQuestionChecked:
		return "Bu savol allaqachon tekshirilgan."
	case ErrAnswerRequired:
		return "Avval javob variantini tanlang."
	case ErrUnknownQuestion:
		return "Bunday savol joriy testda yo'q."
	case ErrInvalidQuestion:
		return "Savol raqami noto'g'ri."
	case ErrNoActiveSession:
		return "Faol test sessiyasi topilmadi."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Juda ko'p so'rov. Keyinroq urinib ko'ring."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Ichki server xatosi yuz berdi."
	default:
		return "Kutilmagan xatolik yuz berdi."
	}
}
