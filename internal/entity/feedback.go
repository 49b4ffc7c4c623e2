package entity

import (
	"database/sql"

	"github.com/shareboost/backend/pkg/enum"
)

type BiggestHurdle string

var (
	HurdleTimeCommitment   = enum.New(BiggestHurdle("time_commitment"))
	HurdleSimplifyingTopic = enum.New(BiggestHurdle("simplifying_topics"))
	HurdleAudienceReach    = enum.New(BiggestHurdle("audience_reach"))
	HurdleCompliance       = enum.New(BiggestHurdle("compliance"))
	HurdleOther            = enum.New(BiggestHurdle("other"))
)

type PrimaryMotivation string

var (
	MotivationBrandBuilding    = enum.New(PrimaryMotivation("brand_building"))
	MotivationClientAttraction = enum.New(PrimaryMotivation("client_attraction"))
	MotivationRevenueStream    = enum.New(PrimaryMotivation("revenue_stream"))
	MotivationEducation        = enum.New(PrimaryMotivation("education"))
)

type TimeConsumingPart string

var (
	TimePartResearch   = enum.New(TimeConsumingPart("research"))
	TimePartDrafting   = enum.New(TimeConsumingPart("drafting"))
	TimePartEditing    = enum.New(TimeConsumingPart("editing"))
	TimePartFormatting = enum.New(TimeConsumingPart("formatting"))
)

type ProfessionalFear string

var (
	FearLosingClients      = enum.New(ProfessionalFear("losing_clients"))
	FearBecomingIrrelevant = enum.New(ProfessionalFear("becoming_irrelevant"))
	FearBeingOutdated      = enum.New(ProfessionalFear("being_outdated"))
	FearNone               = enum.New(ProfessionalFear("no_fear"))
)

type Feedback struct {
	Base

	// Anonymous submissions leave UserID null. The row survives a user
	// deletion, only the link is lost.
	UserID sql.NullString `gorm:"index"`
	User   *User          `gorm:"foreignKey:UserID"`

	IPAddress string
	UserAgent string

	Email string `gorm:"index"`
	Name  string

	BiggestHurdle      BiggestHurdle `gorm:"index"`
	BiggestHurdleOther string
	PrimaryMotivation  PrimaryMotivation `gorm:"index"`
	TimeConsumingPart  TimeConsumingPart `gorm:"index"`
	ProfessionalFear   ProfessionalFear  `gorm:"index"`

	MonetizationConsiderations string
	ProfessionalLegacy         string
	PlatformImpact             string
}
