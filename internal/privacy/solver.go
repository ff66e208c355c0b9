// Package privacy holds the pure visibility decision used for posts, profile
// fields, friend lists and timeline posting. It has no storage access: the
// caller supplies the relationship inputs, including the second-degree check
// as a closure so only the friends_of_friends branch pays for it.
package privacy

import (
	"github.com/bekarys04/Social_Network/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Decision is the outcome of a visibility check.
type Decision bool

const (
	Allow Decision = true
	Deny  Decision = false
)

// MutualFunc reports whether the viewer shares at least one accepted
// connection with an accepted connection of the owner.
type MutualFunc func(viewer, owner primitive.ObjectID) bool

// CanView decides, rules in order, first match wins:
// blocked pairs are denied, owners see their own content, then the policy
// level is matched against the relation status.
func CanView(viewer, owner primitive.ObjectID, policy, relation string, blocked bool, hasMutual MutualFunc) Decision {
	if blocked {
		return Deny
	}
	if viewer == owner {
		return Allow
	}

	switch policy {
	case models.VisibilityPublic:
		return Allow
	case models.VisibilityFriends:
		if relation == models.RelationAccepted {
			return Allow
		}
	case models.VisibilityFriendsOfFriends:
		if relation == models.RelationAccepted {
			return Allow
		}
		if hasMutual != nil && hasMutual(viewer, owner) {
			return Allow
		}
	case models.VisibilityOnlyMe:
		return Deny
	}
	return Deny
}

// CanMessage decides whether the sender may open a conversation with the
// recipient under the recipient's messaging level.
func CanMessage(sender, recipient primitive.ObjectID, level, relation string, blocked bool) Decision {
	if blocked {
		return Deny
	}
	if sender == recipient {
		return Deny
	}

	switch level {
	case models.MessagingEveryone:
		return Allow
	case models.MessagingFriends:
		if relation == models.RelationAccepted {
			return Allow
		}
	case models.MessagingNobody:
		return Deny
	}
	return Deny
}
