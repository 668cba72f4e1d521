package tables

import (
	"testing"

	"travel-portal/types/booking"
	"travel-portal/types/travelpackage"
	"travel-portal/types/user"

	"github.com/stretchr/testify/assert"
)

func TestUsers_SearchAndRoleFilter(t *testing.T) {
	rows := []user.User{
		{ID: "1", Name: "Asha Rao", Email: "asha@example.com", Role: "USER"},
		{ID: "2", Name: "Ravi", Email: "ravi@agency.in", Role: "TRAVEL_AGENT"},
		{ID: "3", Name: "Admin", Email: "root@example.com", Role: "ADMIN"},
	}

	res := Users.Apply(rows, map[string]string{"search": "EXAMPLE"})
	assert.Equal(t, 2, res.Total)

	res = Users.Apply(rows, map[string]string{"search": "example", "role": "admin"})
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, "3", res.Rows[0].ID)
}

func TestPackages_ActiveFilter(t *testing.T) {
	rows := []travelpackage.Package{{ID: "a", Active: true}, {ID: "b"}, {ID: "c", Active: true}}

	res := Packages.Apply(rows, map[string]string{"active": "true", "pageSize": "1", "page": "2"})

	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 2, res.TotalPages)
	assert.Equal(t, "c", res.Rows[0].ID)
}

func TestBookings_SearchContactAndIgnoreUnknownFilter(t *testing.T) {
	rows := []booking.Booking{
		{ID: "1", Contact: booking.Contact{Name: "Meera"}, Status: booking.StatusPending},
		{ID: "2", Contact: booking.Contact{Email: "meera@example.com"}, Status: booking.StatusConfirmed},
		{ID: "3", PackageTitle: "Kerala Backwaters", Status: booking.StatusPending},
	}

	res := Bookings.Apply(rows, map[string]string{"search": "meera", "status": "pending", "colour": "red"})

	assert.Equal(t, 1, res.Total)
	assert.Equal(t, "1", res.Rows[0].ID)
}
