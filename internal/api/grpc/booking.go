package grpc

import (
	"context"
	"time"

	"gearshare-backend/internal/service"

	"google.golang.org/protobuf/types/known/structpb"
)

type BookingHandler struct {
	bookingSvc service.BookingService
}

func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

// tripRequest reads the listing and the rental dates shared by Quote and
// CreateBooking.
func tripRequest(r request) (listingID int32, start, end time.Time, err error) {
	if listingID, err = r.int32("listing_id"); err != nil {
		return
	}
	if start, err = r.date("start_date"); err != nil {
		return
	}
	end, err = r.date("end_date")
	return
}

func (h *BookingHandler) Quote(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, err := GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	listingID, start, end, err := tripRequest(fieldsOf(req))
	if err != nil {
		return nil, err
	}

	q, err := h.bookingSvc.Quote(ctx, userID, listingID, start, end)
	if err != nil {
		return nil, toStatus(err)
	}
	return newStruct(MapQuote(q))
}

func (h *BookingHandler) CreateBooking(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, err := GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	r := fieldsOf(req)
	listingID, start, end, err := tripRequest(r)
	if err != nil {
		return nil, err
	}

	b, err := h.bookingSvc.CreateBooking(ctx, userID, listingID, start, end, r.bool("protection_acknowledged"))
	if err != nil {
		return nil, toStatus(err)
	}
	return newStruct(map[string]any{"booking": MapDomainBooking(b)})
}

func (h *BookingHandler) ConfirmBooking(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, err := GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	bookingID, err := fieldsOf(req).int32("booking_id")
	if err != nil {
		return nil, err
	}

	b, err := h.bookingSvc.ConfirmBooking(ctx, userID, bookingID)
	if err != nil {
		return nil, toStatus(err)
	}
	return newStruct(map[string]any{"booking": MapDomainBooking(b)})
}

func (h *BookingHandler) CancelBooking(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, err := GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	r := fieldsOf(req)
	bookingID, err := r.int32("booking_id")
	if err != nil {
		return nil, err
	}

	b, err := h.bookingSvc.CancelBooking(ctx, userID, bookingID, r.string("reason"))
	if err != nil {
		return nil, toStatus(err)
	}
	return newStruct(map[string]any{"booking": MapDomainBooking(b)})
}

func (h *BookingHandler) GetContract(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, err := GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	bookingID, err := fieldsOf(req).int32("booking_id")
	if err != nil {
		return nil, err
	}

	doc, err := h.bookingSvc.GetContract(ctx, userID, bookingID)
	if err != nil {
		return nil, toStatus(err)
	}
	m, err := MapContract(doc)
	if err != nil {
		return nil, toStatus(err)
	}
	return newStruct(map[string]any{"contract": m})
}
