package domain

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

const (
	DirectionLeft  = "left"
	DirectionRight = "right"
)

// Pricing for a paid right-swipe (NGN, whole naira). The fee split is fixed.
const (
	SwipePrice       int64 = 500
	PlatformFee      int64 = 250
	RecipientEarning int64 = 250
)

const TransactionTypeSwipePayment = "swipe_payment"

const (
	TransactionCompleted = "completed"
	TransactionFailed    = "failed"
)

const (
	WithdrawalPending   = "pending"
	WithdrawalApproved  = "approved"
	WithdrawalRejected  = "rejected"
	WithdrawalProcessed = "processed"
)

// FreeSwipeQuotaDefault is granted to quota-bound (male) profiles at signup.
const FreeSwipeQuotaDefault = 10
