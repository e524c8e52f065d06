package domain

import "time"

// Business validation constants
const (
	MaxTitleLength              = 200
	MaxDescriptionLength        = 2000
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxServiceTags              = 10
)

// DefaultQuoteDuration длительность бронирования, создаваемого из принятой
// сметы: payload сметы несет только момент начала работ
const DefaultQuoteDuration = 60 * time.Minute

// CancelledStatuses список статусов отмененных бронирований
// Используется для исключения при проверке пересечений расписания
var CancelledStatuses = []ReservationStatus{
	StatusCanceledClient,
	StatusCanceledPro,
}

// ActiveStatuses список статусов, занимающих расписание специалиста
var ActiveStatuses = []ReservationStatus{
	StatusPendingApproval,
	StatusConfirmed,
	StatusOnRoute,
	StatusInProgress,
	StatusCompleted,
	StatusDisputed,
}

// AllStatuses полный список статусов хранения
var AllStatuses = []ReservationStatus{
	StatusPendingApproval,
	StatusConfirmed,
	StatusOnRoute,
	StatusInProgress,
	StatusCompleted,
	StatusCanceledClient,
	StatusCanceledPro,
	StatusDisputed,
}
