package errors

var (
	// Strategy lifecycle and admission control.
	AlreadyInitialized = NewError(100, "strategy is already initialized")
	NotInitialized     = NewError(101, "strategy is not initialized")
	Unauthorized       = NewError(102, "caller is not the bound round")

	// Ballot data.
	MalformedBallot = NewError(110, "ballot payload does not match the wire format")
	InvalidBallot   = NewError(111, "ballot violates invariants")

	// Funds.
	TransferFailed = NewError(120, "token transfer failed")

	// Amount arithmetic.
	MaximumAmountReached = NewError(130, "amount exceeds the maximum representable value")
	AmountUnderZero      = NewError(131, "amount would become negative")
	InvalidAmountString  = NewError(132, "amount string is not a valid unsigned integer")

	// Storage.
	StorageCoreError           = NewError(140, "storage core error")
	StorageRecordDoesNotExist  = NewError(141, "record does not exist in storage")
	StorageRecordAlreadyExists = NewError(142, "record already exists in storage")
	NotCommittable             = NewError(143, "storage is not a transaction")
	AlreadyCommittable         = NewError(144, "storage is already a transaction")
	InvalidStorageConfig       = NewError(145, "invalid storage configuration")

	// Misc.
	InvalidAddress      = NewError(150, "address is not a valid 20-byte hex address")
	UnknownStrategy     = NewError(151, "no strategy registered under the given name")
	BadRequestParameter = NewError(160, "request parameter is invalid")
	NotFound            = NewError(161, "resource not found")
)
