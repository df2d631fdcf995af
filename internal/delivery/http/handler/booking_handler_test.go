package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hospital-booking-api/internal/delivery/dto"
	"hospital-booking-api/internal/usecase"
	"hospital-booking-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// stubBookingUsecase returns canned responses so handler tests exercise only
// decoding, validation and status-code mapping.
type stubBookingUsecase struct {
	booking *dto.BookingResponse
	list    *dto.BookingListResponse
	stats   *dto.BookingStatsResponse
	err     error

	lastCreate *dto.CreateBookingRequest
	lastUpdate *dto.UpdateBookingRequest
	lastTrack  *dto.TrackBookingRequest
}

func (s *stubBookingUsecase) CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	s.lastCreate = req
	return s.booking, s.err
}

func (s *stubBookingUsecase) UpdateBooking(ctx context.Context, id uuid.UUID, req *dto.UpdateBookingRequest) (*dto.BookingResponse, error) {
	s.lastUpdate = req
	return s.booking, s.err
}

func (s *stubBookingUsecase) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	return s.err
}

func (s *stubBookingUsecase) TrackBooking(ctx context.Context, req *dto.TrackBookingRequest) (*dto.BookingResponse, error) {
	s.lastTrack = req
	return s.booking, s.err
}

func (s *stubBookingUsecase) GetAllBookings(ctx context.Context) (*dto.BookingListResponse, error) {
	return s.list, s.err
}

func (s *stubBookingUsecase) GetBookingStats(ctx context.Context) (*dto.BookingStatsResponse, error) {
	return s.stats, s.err
}

func newBookingHandlerForTest(stub *stubBookingUsecase) *BookingHandler {
	return NewBookingHandler(stub, validator.NewValidator())
}

func validCreateBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(dto.CreateBookingRequest{
		PatientName:     "Budi Santoso",
		PatientEmail:    "budi@example.com",
		PatientPhone:    "+628123456789",
		DoctorID:        uuid.New(),
		AppointmentDate: "2026-07-15",
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return bytes.NewBuffer(body)
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestCreateBookingHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       *bytes.Buffer
		usecaseErr error
		wantStatus int
	}{
		{"created", nil, nil, http.StatusCreated},
		{"unknown doctor", nil, usecase.ErrDoctorNotFound, http.StatusNotFound},
		{"bad date", nil, usecase.ErrInvalidDateFormat, http.StatusBadRequest},
		{"malformed json", bytes.NewBufferString("{not json"), nil, http.StatusBadRequest},
		{"missing fields", bytes.NewBufferString(`{"patient_name":"B"}`), nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubBookingUsecase{
				booking: &dto.BookingResponse{ID: uuid.New(), TrackingID: "4217", Status: "pending"},
				err:     tt.usecaseErr,
			}
			h := newBookingHandlerForTest(stub)

			body := tt.body
			if body == nil {
				body = validCreateBody(t)
			}
			req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", body)
			rec := httptest.NewRecorder()

			h.CreateBooking(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestCreateBookingHandler_ResponseEnvelope(t *testing.T) {
	stub := &stubBookingUsecase{
		booking: &dto.BookingResponse{ID: uuid.New(), TrackingID: "4217", Status: "pending"},
	}
	h := newBookingHandlerForTest(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", validCreateBody(t))
	rec := httptest.NewRecorder()
	h.CreateBooking(rec, req)

	body := decodeResponse(t, rec)
	if body["success"] != true {
		t.Errorf("success = %v, want true", body["success"])
	}
	data, ok := body["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("data missing from envelope: %v", body)
	}
	if data["tracking_id"] != "4217" {
		t.Errorf("tracking_id = %v, want 4217", data["tracking_id"])
	}
}

func TestTrackBookingHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		usecaseErr error
		wantStatus int
	}{
		{"found", `{"tracking_id":"4217"}`, nil, http.StatusOK},
		{"no identifiers", `{}`, usecase.ErrTrackingQueryRequired, http.StatusBadRequest},
		{"not found", `{"tracking_id":"0000"}`, usecase.ErrBookingNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubBookingUsecase{
				booking: &dto.BookingResponse{ID: uuid.New(), TrackingID: "4217"},
				err:     tt.usecaseErr,
			}
			h := newBookingHandlerForTest(stub)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/track", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			h.TrackBooking(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestUpdateBookingHandler(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		body       string
		usecaseErr error
		wantStatus int
	}{
		{"updated", uuid.NewString(), `{"status":"confirmed","appointment_time":"10:00 AM - 12:00 PM"}`, nil, http.StatusOK},
		{"bad uuid", "not-a-uuid", `{"status":"confirmed"}`, nil, http.StatusBadRequest},
		{"unknown booking", uuid.NewString(), `{"status":"confirmed"}`, usecase.ErrBookingNotFound, http.StatusNotFound},
		{"status outside enum", uuid.NewString(), `{"status":"cancelled"}`, nil, http.StatusBadRequest},
		{"missing status", uuid.NewString(), `{"appointment_time":"10:00 AM"}`, nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubBookingUsecase{
				booking: &dto.BookingResponse{ID: uuid.New(), Status: "confirmed"},
				err:     tt.usecaseErr,
			}
			h := newBookingHandlerForTest(stub)

			req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/bookings/"+tt.id, bytes.NewBufferString(tt.body))
			req = mux.SetURLVars(req, map[string]string{"id": tt.id})
			rec := httptest.NewRecorder()
			h.UpdateBooking(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestDeleteBookingHandler(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		usecaseErr error
		wantStatus int
	}{
		{"deleted", uuid.NewString(), nil, http.StatusOK},
		{"bad uuid", "abc", nil, http.StatusBadRequest},
		{"unknown booking", uuid.NewString(), usecase.ErrBookingNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubBookingUsecase{err: tt.usecaseErr}
			h := newBookingHandlerForTest(stub)

			req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/bookings/"+tt.id, nil)
			req = mux.SetURLVars(req, map[string]string{"id": tt.id})
			rec := httptest.NewRecorder()
			h.DeleteBooking(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestGetBookingStatsHandler(t *testing.T) {
	stub := &stubBookingUsecase{
		stats: &dto.BookingStatsResponse{Total: 5, Pending: 2, Confirmed: 2, Rejected: 1},
	}
	h := newBookingHandlerForTest(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings/stats", nil)
	rec := httptest.NewRecorder()
	h.GetBookingStats(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeResponse(t, rec)
	data, ok := body["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("data missing from envelope: %v", body)
	}
	if data["total"] != float64(5) {
		t.Errorf("total = %v, want 5", data["total"])
	}
}
