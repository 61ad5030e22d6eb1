package errors

type (
	ServiceFoundNilArgument struct {
		Msg string
	}
	ServiceIllegalCredentials struct {
		Msg string
	}
	ServiceIllegalAccountType struct {
		Msg string
	}
)

func (e *ServiceFoundNilArgument) Error() string {
	return e.Msg
}

func (e *ServiceIllegalCredentials) Error() string {
	return e.Msg
}

func (e *ServiceIllegalAccountType) Error() string {
	return e.Msg
}
