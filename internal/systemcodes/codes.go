package systemcodes

const (
	ErrorCodeGeneric = 1
	ErrorCodeConfig  = 3
	ErrorCodeUsage   = 64
)
