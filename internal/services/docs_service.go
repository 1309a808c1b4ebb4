package services

import (
	"bytes"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	intconfig "transport/internal/config"
	"transport/internal/repositories"
	"transport/internal/utils"
)

// DocsService renders the e-ticket and receipt PDFs for a booking.
type DocsService struct {
	BookingRepo repositories.BookingRepo
	TripRepo    repositories.TripRepo
	UserRepo    repositories.UserRepo
	DriverRepo  repositories.DriverRepo
	DB          *sql.DB
	RequestID   string
}

func (s DocsService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s DocsService) bookings() repositories.BookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepo{DB: s.db()}
}

func (s DocsService) trips() repositories.TripRepo {
	if s.TripRepo.DB != nil {
		return s.TripRepo
	}
	return repositories.TripRepo{DB: s.db()}
}

func (s DocsService) users() repositories.UserRepo {
	if s.UserRepo.DB != nil {
		return s.UserRepo
	}
	return repositories.UserRepo{DB: s.db()}
}

func (s DocsService) drivers() repositories.DriverRepo {
	if s.DriverRepo.DB != nil {
		return s.DriverRepo
	}
	return repositories.DriverRepo{DB: s.db()}
}

type bookingDocData struct {
	BookingID     int64
	PassengerName string
	Phone         string
	TripName      string
	RouteFrom     string
	RouteTo       string
	Departure     time.Time
	Seats         int
	TotalCents    int64
	DriverName    string
	Status        string
}

func (s DocsService) ETicket(bookingID, userID int64) ([]byte, string, error) {
	data, err := s.loadDocData(bookingID, userID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "eticket", fmt.Sprintf("booking_id=%d", bookingID))
	return buildETicketPDF(data)
}

func (s DocsService) Receipt(bookingID, userID int64) ([]byte, string, error) {
	data, err := s.loadDocData(bookingID, userID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "receipt", fmt.Sprintf("booking_id=%d", bookingID))
	return buildReceiptPDF(data)
}

func (s DocsService) loadDocData(bookingID, userID int64) (bookingDocData, error) {
	var out bookingDocData
	booking, err := BookingService{BookingRepo: s.bookings(), TripRepo: s.trips(), DB: s.db()}.GetForUser(bookingID, userID)
	if err != nil {
		return out, err
	}
	trip, err := s.trips().GetByID(booking.TripID)
	if err != nil {
		return out, err
	}
	user, err := s.users().GetByID(userID)
	if err != nil {
		return out, err
	}

	out = bookingDocData{
		BookingID:     booking.ID,
		PassengerName: user.Name,
		Phone:         user.Phone,
		TripName:      trip.TripName,
		RouteFrom:     trip.StartLocation,
		RouteTo:       trip.EndLocation,
		Departure:     trip.DepartureTime,
		Seats:         booking.SeatsBooked,
		TotalCents:    booking.TotalPriceCents,
		Status:        booking.Status,
	}
	if trip.DriverID != nil {
		if d, err := s.drivers().GetByID(*trip.DriverID); err == nil {
			out.DriverName = d.Name
		}
	}
	return out, nil
}

func buildETicketPDF(d bookingDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Passenger   : %s", safe(d.PassengerName, "-")),
		fmt.Sprintf("Phone       : %s", safe(d.Phone, "-")),
		fmt.Sprintf("Trip        : %s", safe(d.TripName, "-")),
		fmt.Sprintf("Route       : %s -> %s", safe(d.RouteFrom, "-"), safe(d.RouteTo, "-")),
		fmt.Sprintf("Departure   : %s", d.Departure.Format("2006-01-02 15:04")),
		fmt.Sprintf("Seats       : %d", d.Seats),
		fmt.Sprintf("Driver      : %s", safe(d.DriverName, "-")),
		fmt.Sprintf("Status      : %s", safe(d.Status, "-")),
		fmt.Sprintf("Booking Ref : BK-%d", d.BookingID),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please present this ticket at departure.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("ETICKET_%d_%s.pdf", d.BookingID, safeFilenamePart(d.PassengerName))
	return buf.Bytes(), filename, nil
}

func buildReceiptPDF(d bookingDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Receipt No : RCP-%d", d.BookingID))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Issued     : "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Billed to:")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Name  : %s", safe(d.PassengerName, "-")))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Phone : %s", safe(d.Phone, "-")))
	pdf.Ln(10)

	desc := fmt.Sprintf("%s (%s -> %s, %s), %d seat(s)",
		safe(d.TripName, "-"), safe(d.RouteFrom, "-"), safe(d.RouteTo, "-"),
		d.Departure.Format("2006-01-02 15:04"), d.Seats)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Details:")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, "1) "+desc, "", "", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+utils.FormatMoney(d.TotalCents))
	pdf.Ln(12)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("RECEIPT_%d_%s.pdf", d.BookingID, safeFilenamePart(d.PassengerName))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
