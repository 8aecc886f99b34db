package models

import (
	"github.com/go-playground/validator/v10"
	"github.com/octabyte/hostel-gommon/enums"
)

var validate = newValidator()

type enumValue interface {
	Valid() bool
}

// newValidator adds the "enum" tag, which accepts any value whose Valid
// method reports true.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		e, ok := fl.Field().Interface().(enumValue)
		return ok && e.Valid()
	})
	return v
}

type RegisterRequest struct {
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required,min=6"`
	Name     string     `json:"name" validate:"required"`
	Role     enums.Role `json:"role,omitempty" validate:"omitempty,oneof=student owner"`
}

func (r *RegisterRequest) Validate() error {
	return validate.Struct(r)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	return validate.Struct(r)
}

type HostelRequest struct {
	Name             string   `json:"name" validate:"required,max=150"`
	Location         string   `json:"location" validate:"required,max=200"`
	Description      string   `json:"description,omitempty"`
	TotalRooms       int      `json:"total_rooms" validate:"required,min=1"`
	PricePerMonth    float64  `json:"price_per_month" validate:"gte=0"`
	PricePerSemester float64  `json:"price_per_semester,omitempty" validate:"gte=0"`
	Amenities        string   `json:"amenities,omitempty"`
	Images           []string `json:"images,omitempty" validate:"dive,startswith=data:"`
}

func (r *HostelRequest) Validate() error {
	return validate.Struct(r)
}

type RoomRequest struct {
	HostelID      string         `json:"hostel_id" validate:"required"`
	RoomNumber    string         `json:"room_number" validate:"required,max=20"`
	RoomType      enums.RoomType `json:"room_type,omitempty" validate:"omitempty,enum"`
	Capacity      int            `json:"capacity,omitempty" validate:"omitempty,min=1"`
	PricePerMonth float64        `json:"price_per_month" validate:"gte=0"`
	Floor         int            `json:"floor,omitempty"`
	Amenities     string         `json:"amenities,omitempty"`
}

func (r *RoomRequest) Validate() error {
	return validate.Struct(r)
}

type BookingRequest struct {
	HostelID      string `json:"hostel_id" validate:"required"`
	SemesterStart string `json:"semester_start,omitempty" validate:"omitempty,datetime=2006-01-02"`
	SemesterEnd   string `json:"semester_end,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes         string `json:"notes,omitempty"`
}

func (r *BookingRequest) Validate() error {
	return validate.Struct(r)
}

type ApproveBookingRequest struct {
	RoomID string `json:"room_id,omitempty"`
}

type RejectBookingRequest struct {
	Reason string `json:"reason,omitempty"`
}

type IssueRequest struct {
	HostelID    string              `json:"hostel_id" validate:"required"`
	Title       string              `json:"title" validate:"required,max=200"`
	Description string              `json:"description" validate:"required"`
	Priority    enums.IssuePriority `json:"priority,omitempty" validate:"omitempty,enum"`
}

func (r *IssueRequest) Validate() error {
	return validate.Struct(r)
}

type ResolveIssueRequest struct {
	Notes string `json:"notes,omitempty"`
}

type NoticeRequest struct {
	HostelID string               `json:"hostel_id" validate:"required"`
	Title    string               `json:"title" validate:"required,max=200"`
	Message  string               `json:"message" validate:"required"`
	Priority enums.NoticePriority `json:"priority,omitempty" validate:"omitempty,enum"`
}

func (r *NoticeRequest) Validate() error {
	return validate.Struct(r)
}

// PaymentRequest is accepted by both payments/make (students) and
// payments/record (owners). TransactionID is generated by the backend when
// a student leaves it empty.
type PaymentRequest struct {
	BookingID     string              `json:"booking_id" validate:"required"`
	Amount        float64             `json:"amount" validate:"gt=0"`
	PaymentMethod enums.PaymentMethod `json:"payment_method,omitempty" validate:"omitempty,enum"`
	TransactionID string              `json:"transaction_id,omitempty"`
}

func (r *PaymentRequest) Validate() error {
	return validate.Struct(r)
}
