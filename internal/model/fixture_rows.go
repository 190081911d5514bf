package model

// PatientRow mirrors the patient input file columns, for fixtures.
type PatientRow struct {
	PatientID         string `parquet:"patient_id"`
	Name              string `parquet:"name"`
	ScheduledDateTime string `parquet:"scheduled_datetime"`
	Procedure         string `parquet:"procedure"`
	PreferredSurgeon  string `parquet:"preferred_surgeon"`
	Priority          int32  `parquet:"priority"`
}

// SurgeonRow mirrors the surgeon input file columns, for fixtures.
type SurgeonRow struct {
	SurgeonID  string `parquet:"surgeon_id"`
	Name       string `parquet:"name"`
	Skills     string `parquet:"skills"`
	ShiftStart string `parquet:"shift_start"`
	ShiftEnd   string `parquet:"shift_end"`
}

// OperatingRoomRow mirrors the operating room input file columns, for fixtures.
type OperatingRoomRow struct {
	ORID         string  `parquet:"or_id"`
	RoomType     string  `parquet:"room_type"`
	TurnoverTime float64 `parquet:"turnover_time"`
}
