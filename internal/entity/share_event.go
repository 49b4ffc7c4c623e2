package entity

import "github.com/shareboost/backend/pkg/enum"

type Platform string

var (
	PlatformTwitter   = enum.New(Platform("twitter"))
	PlatformInstagram = enum.New(Platform("instagram"))
	PlatformFacebook  = enum.New(Platform("facebook"))
	PlatformLinkedin  = enum.New(Platform("linkedin"))
)

// PlatformPoints is the fixed point value awarded for the first share on
// each platform. The values weight platforms by assumed reach, they are a
// product decision.
var PlatformPoints = map[Platform]int64{
	PlatformTwitter:   1,
	PlatformInstagram: 2,
	PlatformFacebook:  3,
	PlatformLinkedin:  5,
}

type ShareEvent struct {
	Base

	UserID string `gorm:"uniqueIndex:idx_share_events_user_platform"`
	User   User   `gorm:"foreignKey:UserID"`

	// The composite unique index is the authoritative guard against
	// awarding points twice for the same platform; the existence check in
	// the share ledger is only an optimization.
	Platform Platform `gorm:"uniqueIndex:idx_share_events_user_platform"`

	PointsEarned int64
}
