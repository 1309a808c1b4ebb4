package services

import (
	"bytes"
	"testing"
	"time"
)

func TestBuildBookingPDFs(t *testing.T) {
	data := bookingDocData{
		BookingID:     10,
		PassengerName: "Tester",
		Phone:         "0800",
		TripName:      "City Express",
		RouteFrom:     "Springfield",
		RouteTo:       "Shelbyville",
		Departure:     time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Seats:         2,
		TotalCents:    2000,
		DriverName:    "Driver",
		Status:        "Confirmed",
	}

	pdf, filename, err := buildETicketPDF(data)
	if err != nil {
		t.Fatalf("buildETicketPDF returned error: %v", err)
	}
	if len(pdf) == 0 || filename == "" {
		t.Fatal("buildETicketPDF returned empty data")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatal("e-ticket output is not a PDF")
	}

	receipt, rcpName, err := buildReceiptPDF(data)
	if err != nil {
		t.Fatalf("buildReceiptPDF returned error: %v", err)
	}
	if len(receipt) == 0 || rcpName == "" {
		t.Fatal("buildReceiptPDF returned empty data")
	}
}
