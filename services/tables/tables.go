// Package tables declares the searchable, filterable columns of every
// dashboard listing.
package tables

import (
	"strconv"

	"travel-portal/services/tablequery"
	"travel-portal/types/assistance"
	"travel-portal/types/booking"
	"travel-portal/types/review"
	"travel-portal/types/travelpackage"
	"travel-portal/types/user"
)

var Users = tablequery.Table[user.User]{
	Columns: tablequery.Columns[user.User]{
		"name":  func(u user.User) string { return u.Name },
		"email": func(u user.User) string { return u.Email },
		"role":  func(u user.User) string { return u.Role },
	},
	SearchKeys: []string{"name", "email"},
	FilterKeys: []string{"role"},
}

var Bookings = tablequery.Table[booking.Booking]{
	Columns: tablequery.Columns[booking.Booking]{
		"contactName":  func(b booking.Booking) string { return b.Contact.Name },
		"contactEmail": func(b booking.Booking) string { return b.Contact.Email },
		"packageTitle": func(b booking.Booking) string { return b.PackageTitle },
		"packageId":    func(b booking.Booking) string { return b.PackageID },
		"status":       func(b booking.Booking) string { return b.Status },
		"userId":       func(b booking.Booking) string { return b.UserID },
	},
	SearchKeys: []string{"contactName", "contactEmail", "packageTitle", "packageId"},
	FilterKeys: []string{"status", "packageId", "userId"},
}

var Packages = tablequery.Table[travelpackage.Package]{
	Columns: tablequery.Columns[travelpackage.Package]{
		"title":       func(p travelpackage.Package) string { return p.Title },
		"destination": func(p travelpackage.Package) string { return p.Destination },
		"active":      func(p travelpackage.Package) string { return strconv.FormatBool(p.Active) },
	},
	SearchKeys: []string{"title", "destination"},
	FilterKeys: []string{"active"},
}

var Reviews = tablequery.Table[review.Review]{
	Columns: tablequery.Columns[review.Review]{
		"comment":   func(r review.Review) string { return r.Comment },
		"userName":  func(r review.Review) string { return r.UserName },
		"rating":    func(r review.Review) string { return strconv.Itoa(r.Rating) },
		"packageId": func(r review.Review) string { return r.PackageID },
	},
	SearchKeys: []string{"comment", "userName"},
	FilterKeys: []string{"rating", "packageId"},
}

var Tickets = tablequery.Table[assistance.Request]{
	Columns: tablequery.Columns[assistance.Request]{
		"issueDescription": func(r assistance.Request) string { return r.IssueDescription },
		"userId":           func(r assistance.Request) string { return r.UserID },
		"status":           func(r assistance.Request) string { return r.Status },
	},
	SearchKeys: []string{"issueDescription", "userId"},
	FilterKeys: []string{"status"},
}
