package models

import (
	"time"

	"github.com/google/uuid"
)

// OfferStatus - статус предложения помощи
type OfferStatus string

const (
	OfferStatusPending  OfferStatus = "PENDING"
	OfferStatusAccepted OfferStatus = "ACCEPTED"
	OfferStatusRejected OfferStatus = "REJECTED"
)

// Valid проверяет, что статус входит в известный набор
func (s OfferStatus) Valid() bool {
	switch s {
	case OfferStatusPending, OfferStatusAccepted, OfferStatusRejected:
		return true
	}
	return false
}

// Decision - ответ запросившего помощь на предложение
type Decision string

const (
	DecisionAccept Decision = "ACCEPT"
	DecisionReject Decision = "REJECT"
)

// Status возвращает статус, в который переводит предложение решение d
func (d Decision) Status() (OfferStatus, bool) {
	switch d {
	case DecisionAccept:
		return OfferStatusAccepted, true
	case DecisionReject:
		return OfferStatusRejected, true
	}
	return "", false
}

// HelpOffer - направленное предложение помощи от helper к requester.
// Пара (RequesterID, HelperID) уникальна.
type HelpOffer struct {
	ID          uuid.UUID   `json:"id"`
	RequesterID string      `json:"requester_id"`
	HelperID    string      `json:"helper_id"`
	Status      OfferStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}
