package exitcode

const (
	Success         = 0
	UsageError      = 1
	ValidationError = 2
	IOError         = 3
	DBConnError     = 4
	RecordError     = 5
	Cancelled       = 6
)
