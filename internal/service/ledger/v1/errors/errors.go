package errors

type (
	LedgerInvalidAmount struct {
		Msg string
	}
	LedgerNotEnoughFunds struct {
		Msg string
	}
	LedgerUnknownKind struct {
		Msg string
	}
)

func (e *LedgerInvalidAmount) Error() string {
	return e.Msg
}

func (e *LedgerNotEnoughFunds) Error() string {
	return e.Msg
}

func (e *LedgerUnknownKind) Error() string {
	return e.Msg
}
