// Package schema is the registry of doctor record fields and the single place
// where inbound values are converted to their stored representation.
package schema

import "docpool/internal/domain/entity"

// Kind is the storage shape of a field.
type Kind int

const (
	KindText Kind = iota
	KindInteger
	KindDecimal
	KindBit
	KindDate
	KindEnum
	KindStructured
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInteger:
		return "integer"
	case KindDecimal:
		return "decimal"
	case KindBit:
		return "bit"
	case KindDate:
		return "date"
	case KindEnum:
		return "enum"
	case KindStructured:
		return "structured"
	default:
		return "unknown"
	}
}

// Field describes one writable column. Name is both the JSON key and the column.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	Default  interface{}
	// Format is a validator tag applied to text values (e.g. "email").
	Format string
	// Enum lists the allowed values of a KindEnum field.
	Enum []string
	// Min is the smallest accepted value of a numeric field.
	Min *int64
	// Precision and Scale bound a KindDecimal field like NUMERIC(precision, scale).
	Precision int32
	Scale     int32
	// Decode converts a structured value to its serialized text form.
	Decode func(raw interface{}) (string, error)
}

// Column names referenced by name composition and the gateway
const (
	FieldFullName         = "full_name"
	FieldFirstName        = "first_name"
	FieldMiddleName       = "middle_name"
	FieldLastName         = "last_name"
	FieldMobileNumber     = "mobile_number"
	FieldEngagementStatus = "engagement_status"
	FieldDoctorCategory   = "doctor_category"
	FieldWorkingPlaces    = "working_places"
	FieldExperience       = "experience_history"
	FieldUpdatedAt        = "updated_at"
	FieldCreatedAt        = "created_at"
	FieldDoctorID         = "doctor_id"
	FieldID               = "id"
	fieldNameParts        = "name_parts"
)

var zero int64

func text(name string) Field    { return Field{Name: name, Kind: KindText} }
func date(name string) Field    { return Field{Name: name, Kind: KindDate} }
func bit(name string) Field     { return Field{Name: name, Kind: KindBit, Default: int64(0)} }
func integer(name string) Field { return Field{Name: name, Kind: KindInteger, Min: &zero} }

// Fields is the ordered registry of every writable doctor column.
var Fields = []Field{
	// identity & contact
	{Name: FieldFullName, Kind: KindText, Required: true},
	text(FieldFirstName),
	text(FieldMiddleName),
	text(FieldLastName),
	text("gender"),
	date("date_of_birth"),
	text("profile_photo_url"),
	text("profile_photo"),
	text("hospital_photo"),
	text("logo_photo"),
	{Name: FieldMobileNumber, Kind: KindText, Required: true},
	{Name: "email", Kind: KindText, Format: "email"},
	bit("whatsapp_enabled"),

	// professional credentials
	text("primary_qualification"),
	text("specialization"),
	text("super_specialization"),
	integer("years_of_experience"),
	{Name: FieldExperience, Kind: KindStructured, Decode: decodeExperienceHistory},
	bit("manual_experience_override"),
	text("medical_council_reg_no"),
	text("registration_council"),
	date("registration_valid_till"),

	// practice & work
	text("practice_type"),
	text("primary_hospital_name"),
	text("secondary_hospitals"),
	text("clinic_name"),
	text("opd_days"),
	text("opd_timings"),
	{Name: "consultation_fee", Kind: KindDecimal, Min: &zero, Precision: 12, Scale: 2},
	bit("teleconsultation_available"),
	{Name: FieldWorkingPlaces, Kind: KindStructured, Decode: decodeWorkingPlaces},

	// location
	text("state"),
	text("city"),
	text("area_locality"),
	text("pin_code"),
	{Name: "google_maps_link", Kind: KindText, Format: "url"},
	bit("home_visit_available"),

	// digital platforms
	bit("listed_on_mysaa"),
	bit("listed_on_docsynapse"),
	bit("app_login_created"),

	// referral & network
	{Name: FieldDoctorCategory, Kind: KindEnum, Enum: []string{entity.CategoryPlatinum, entity.CategoryGold, entity.CategorySilver}},
	bit("cme_participation"),
	bit("workshop_conductor"),
	text("referral_capability"),
	text("common_referral_specialties"),
	bit("op_strength_0_20"),
	bit("op_strength_20_50"),
	bit("op_strength_50_75"),
	bit("op_strength_75_100"),
	bit("op_strength_100_plus"),
	bit("inbound_referrals"),
	bit("outbound_referrals"),
	integer("network_strength_score"),

	// commercial terms
	text("payment_model"),
	bit("agreement_signed"),
	date("agreement_start_date"),
	date("agreement_end_date"),
	bit("gst_registered"),
	text("gst_number"),

	// engagement tracking
	date("last_interaction_date"),
	date("last_cme_attended"),
	date("last_referral_date"),
	{
		Name:     FieldEngagementStatus,
		Kind:     KindEnum,
		Required: true,
		Default:  entity.EngagementActive,
		Enum:     []string{entity.EngagementActive, entity.EngagementDormant, entity.EngagementInactive},
	},
	text("assigned_relationship_manager"),

	// remarks & flags
	bit("strategic_doctor"),
	bit("kol"),
	text("special_remarks"),
	bit("compliance_flag"),
}

var registry = func() map[string]Field {
	m := make(map[string]Field, len(Fields))
	for _, f := range Fields {
		m[f.Name] = f
	}
	return m
}()

// readOnly keys may appear in payloads (e.g. a record echoed back by the edit
// form) but are never written.
var readOnly = map[string]struct{}{
	FieldID:        {},
	FieldDoctorID:  {},
	FieldCreatedAt: {},
	FieldUpdatedAt: {},
	fieldNameParts: {},
}

// Lookup returns the registered field with the given name.
func Lookup(name string) (Field, bool) {
	f, ok := registry[name]
	return f, ok
}
