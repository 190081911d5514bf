package schema

// Built-in schemas for the simulation's input files.
var (
	PatientSchema = MustNew(Patient,
		Field{Name: "patient_id", Required: true},
		Field{Name: "name"},
		Field{Name: "scheduled_datetime", Required: true},
		Field{Name: "procedure", Required: true},
		Field{Name: "preferred_surgeon"},
		Field{Name: "priority"},
	)

	SurgeonSchema = MustNew(Surgeon,
		Field{Name: "surgeon_id", Required: true},
		Field{Name: "name"},
		Field{Name: "skills"},
		Field{Name: "shift_start"},
		Field{Name: "shift_end"},
	)

	OperatingRoomSchema = MustNew(OperatingRoom,
		Field{Name: "or_id", Required: true},
		Field{Name: "room_type"},
		Field{Name: "turnover_time"},
	)
)

// DefaultRegistry returns a registry holding the built-in schemas.
func DefaultRegistry() *Registry {
	r, _ := NewRegistry(PatientSchema, SurgeonSchema, OperatingRoomSchema)
	return r
}
