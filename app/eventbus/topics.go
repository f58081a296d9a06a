// Package eventbus publishes domain events emitted by the services.
package eventbus

const (
	MetadataEventType = "event_type"
	HeaderMessageID   = "Nats-Msg-Id"
)

// Topics.
const (
	TopicAccountCreated      = "user.account.created"
	TopicRoleChanged         = "user.role.changed"
	TopicUserDeleted         = "user.deleted"
	TopicClubMemberJoined    = "club.member.joined"
	TopicClubMemberLeft      = "club.member.left"
	TopicClubMemberRemoved   = "club.member.removed"
	TopicInterestAdded       = "competition.interest.added"
	TopicRegistrationCreated = "competition.registration.created"
	TopicRegistrationDeleted = "competition.registration.deleted"
)

type AccountCreatedPayload struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

type RoleChangedPayload struct {
	ActorID     int64    `json:"actor_id"`
	UserID      int64    `json:"user_id"`
	Roles       []string `json:"roles"`
	IsStaff     bool     `json:"is_staff"`
	IsSuperuser bool     `json:"is_superuser"`
}

type UserDeletedPayload struct {
	ActorID int64 `json:"actor_id"`
	UserID  int64 `json:"user_id"`
}

type MembershipPayload struct {
	ClubID  int64 `json:"club_id,omitempty"`
	UserID  int64 `json:"user_id"`
	ActorID int64 `json:"actor_id,omitempty"`
}

type InterestPayload struct {
	CompetitionID int64 `json:"competition_id"`
	UserID        int64 `json:"user_id"`
}

type RegistrationPayload struct {
	RegistrationID int64 `json:"registration_id"`
	CompetitionID  int64 `json:"competition_id,omitempty"`
	UserID         int64 `json:"user_id,omitempty"`
}
