package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Engagement statuses
const (
	EngagementActive   = "Active"
	EngagementDormant  = "Dormant"
	EngagementInactive = "Inactive"
)

// Doctor categories
const (
	CategoryPlatinum = "Platinum"
	CategoryGold     = "Gold"
	CategorySilver   = "Silver"
)

// Fees go out as JSON numbers, the same as every other numeric column.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Doctor is one row of the doctor directory.
// Optional text columns are pointers so that NULL survives a round trip.
type Doctor struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID string `gorm:"column:doctor_id;type:text;uniqueIndex;not null" json:"doctor_id"`

	// Identity & contact
	FullName        string  `gorm:"type:text;not null" json:"full_name"`
	FirstName       *string `gorm:"type:text" json:"first_name"`
	MiddleName      *string `gorm:"type:text" json:"middle_name"`
	LastName        *string `gorm:"type:text" json:"last_name"`
	Gender          *string `gorm:"type:text" json:"gender"`
	DateOfBirth     *string `gorm:"type:text" json:"date_of_birth"`
	ProfilePhotoURL *string `gorm:"column:profile_photo_url;type:text" json:"profile_photo_url"`
	ProfilePhoto    *string `gorm:"type:text" json:"profile_photo"`
	HospitalPhoto   *string `gorm:"type:text" json:"hospital_photo"`
	LogoPhoto       *string `gorm:"type:text" json:"logo_photo"`
	MobileNumber    string  `gorm:"type:text;not null;index" json:"mobile_number"`
	Email           *string `gorm:"type:text" json:"email"`
	WhatsappEnabled Bit     `gorm:"type:smallint;not null;default:0" json:"whatsapp_enabled"`

	// Professional credentials
	PrimaryQualification     *string           `gorm:"type:text" json:"primary_qualification"`
	Specialization           *string           `gorm:"type:text;index" json:"specialization"`
	SuperSpecialization      *string           `gorm:"type:text" json:"super_specialization"`
	YearsOfExperience        *int64            `json:"years_of_experience"`
	ExperienceHistory        ExperienceHistory `gorm:"type:text" json:"experience_history"`
	ManualExperienceOverride Bit               `gorm:"type:smallint;not null;default:0" json:"manual_experience_override"`
	MedicalCouncilRegNo      *string           `gorm:"type:text" json:"medical_council_reg_no"`
	RegistrationCouncil      *string           `gorm:"type:text" json:"registration_council"`
	RegistrationValidTill    *string           `gorm:"type:text" json:"registration_valid_till"`

	// Practice & work
	PracticeType              *string             `gorm:"type:text" json:"practice_type"`
	PrimaryHospitalName       *string             `gorm:"type:text" json:"primary_hospital_name"`
	SecondaryHospitals        *string             `gorm:"type:text" json:"secondary_hospitals"`
	ClinicName                *string             `gorm:"type:text" json:"clinic_name"`
	OPDDays                   *string             `gorm:"column:opd_days;type:text" json:"opd_days"`
	OPDTimings                *string             `gorm:"column:opd_timings;type:text" json:"opd_timings"`
	ConsultationFee           decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"consultation_fee"`
	TeleconsultationAvailable Bit                 `gorm:"type:smallint;not null;default:0" json:"teleconsultation_available"`
	WorkingPlaces             *WorkingPlaces      `gorm:"type:text" json:"working_places"`

	// Location
	State              *string `gorm:"type:text;index" json:"state"`
	City               *string `gorm:"type:text;index" json:"city"`
	AreaLocality       *string `gorm:"type:text" json:"area_locality"`
	PinCode            *string `gorm:"type:text" json:"pin_code"`
	GoogleMapsLink     *string `gorm:"type:text" json:"google_maps_link"`
	HomeVisitAvailable Bit     `gorm:"type:smallint;not null;default:0" json:"home_visit_available"`

	// Digital platforms
	ListedOnMysaa      Bit `gorm:"type:smallint;not null;default:0" json:"listed_on_mysaa"`
	ListedOnDocsynapse Bit `gorm:"type:smallint;not null;default:0" json:"listed_on_docsynapse"`
	AppLoginCreated    Bit `gorm:"type:smallint;not null;default:0" json:"app_login_created"`

	// Referral & network
	DoctorCategory            *string `gorm:"type:text;index" json:"doctor_category"`
	CMEParticipation          Bit     `gorm:"column:cme_participation;type:smallint;not null;default:0" json:"cme_participation"`
	WorkshopConductor         Bit     `gorm:"type:smallint;not null;default:0" json:"workshop_conductor"`
	ReferralCapability        *string `gorm:"type:text" json:"referral_capability"`
	CommonReferralSpecialties *string `gorm:"type:text" json:"common_referral_specialties"`
	OPStrength0To20           Bit     `gorm:"column:op_strength_0_20;type:smallint;not null;default:0" json:"op_strength_0_20"`
	OPStrength20To50          Bit     `gorm:"column:op_strength_20_50;type:smallint;not null;default:0" json:"op_strength_20_50"`
	OPStrength50To75          Bit     `gorm:"column:op_strength_50_75;type:smallint;not null;default:0" json:"op_strength_50_75"`
	OPStrength75To100         Bit     `gorm:"column:op_strength_75_100;type:smallint;not null;default:0" json:"op_strength_75_100"`
	OPStrength100Plus         Bit     `gorm:"column:op_strength_100_plus;type:smallint;not null;default:0" json:"op_strength_100_plus"`
	InboundReferrals          Bit     `gorm:"type:smallint;not null;default:0" json:"inbound_referrals"`
	OutboundReferrals         Bit     `gorm:"type:smallint;not null;default:0" json:"outbound_referrals"`
	NetworkStrengthScore      *int64  `json:"network_strength_score"`

	// Commercial terms
	PaymentModel       *string `gorm:"type:text" json:"payment_model"`
	AgreementSigned    Bit     `gorm:"type:smallint;not null;default:0" json:"agreement_signed"`
	AgreementStartDate *string `gorm:"type:text" json:"agreement_start_date"`
	AgreementEndDate   *string `gorm:"type:text" json:"agreement_end_date"`
	GSTRegistered      Bit     `gorm:"column:gst_registered;type:smallint;not null;default:0" json:"gst_registered"`
	GSTNumber          *string `gorm:"column:gst_number;type:text" json:"gst_number"`

	// Engagement tracking
	LastInteractionDate         *string `gorm:"type:text" json:"last_interaction_date"`
	LastCMEAttended             *string `gorm:"column:last_cme_attended;type:text" json:"last_cme_attended"`
	LastReferralDate            *string `gorm:"type:text" json:"last_referral_date"`
	EngagementStatus            string  `gorm:"type:text;not null;default:Active;index" json:"engagement_status"`
	AssignedRelationshipManager *string `gorm:"type:text" json:"assigned_relationship_manager"`

	// Remarks & flags
	StrategicDoctor Bit     `gorm:"type:smallint;not null;default:0" json:"strategic_doctor"`
	KOL             Bit     `gorm:"column:kol;type:smallint;not null;default:0" json:"kol"`
	SpecialRemarks  *string `gorm:"type:text" json:"special_remarks"`
	ComplianceFlag  Bit     `gorm:"type:smallint;not null;default:0" json:"compliance_flag"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// DoctorStats holds the dashboard counters.
type DoctorStats struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Platinum int64 `json:"platinum"`
	Gold     int64 `json:"gold"`
	Silver   int64 `json:"silver"`
}
