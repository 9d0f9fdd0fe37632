package notification

import (
	"testing"

	"employee-portal/internal/events"

	"github.com/stretchr/testify/assert"
)

var (
	testLeave = Leave{ID: "lr-1", StartDate: "2025-03-03", EndDate: "2025-03-04", FromStatus: "pending", ToStatus: "manager_approved"}
	alice     = Party{ID: "e-alice", Name: "Alice Moreau", Email: "alice@example.com", Role: "employee"}
	bob       = Party{ID: "e-bob", Name: "Bob Okafor", Email: "bob@example.com", Role: "manager"}
	hana      = Party{ID: "e-hana", Name: "Hana Ito", Email: "hana@example.com", Role: "hr"}
)

func TestBuilders(t *testing.T) {
	t.Run("submitted goes to manager", func(t *testing.T) {
		m := Submitted(testLeave, alice, bob)

		assert.Equal(t, events.LeaveSubmitted, m.EventType)
		assert.Equal(t, bob.ID, m.RecipientID)
		assert.Equal(t, AudienceManager, m.Audience)
		assert.Equal(t, CategoryApprovalRequired, m.Category)
		assert.Equal(t, "Leave Request Submitted by Alice Moreau", m.Subject)
		assert.Contains(t, m.Body, "(2025-03-03 to 2025-03-04)")
	})

	t.Run("director submitted goes to hr inbox", func(t *testing.T) {
		m := DirectorSubmitted(testLeave, Party{ID: "e-d", Name: "Dina", Role: "director"})

		assert.Equal(t, AudienceHR, m.Audience)
		assert.Empty(t, m.RecipientID)
		assert.Equal(t, HRInboxKey, KeyFor(m))
		assert.Contains(t, m.Body, "Status set to: manager_approved")
	})

	t.Run("manager approved names approver and role", func(t *testing.T) {
		m := ManagerApproved(testLeave, alice, bob)

		assert.Equal(t, alice.ID, m.RecipientID)
		assert.Equal(t, bob.ID, m.ActorID)
		assert.Equal(t, "Leave Request Partially Approved", m.Subject)
		assert.Contains(t, m.Body, "Bob Okafor (manager)")
		assert.Equal(t, InboxKey(alice.ID), KeyFor(m))
	})

	t.Run("rejections carry reason", func(t *testing.T) {
		assert.Contains(t, ManagerRejected(testLeave, alice, bob, "peak season").Body, "Reason: peak season")
		assert.Contains(t, HRRejected(testLeave, alice, hana, "no cover").Body, "rejected by HR (Hana Ito). Reason: no cover")
	})

	t.Run("hr approved and cancelled", func(t *testing.T) {
		assert.Equal(t, "Leave Request Approved", HRApproved(testLeave, alice, hana).Subject)
		c := Cancelled(testLeave, alice)
		assert.Equal(t, events.LeaveCancelled, c.EventType)
		assert.Equal(t, alice.ID, c.ActorID)
		assert.Equal(t, alice.ID, c.RecipientID)
	})
}
