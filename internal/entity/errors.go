package entity

import "errors"

var (
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrBuyerNotFound      = errors.New("buyer not found")
	ErrCampaignNotFound   = errors.New("campaign not found")
	ErrLeadNotFound       = errors.New("buyer lead not found")

	// Violação da UNIQUE (buyer_id, crm_lead_id): o mesmo lead já foi
	// vendido para esse buyer.
	ErrLeadAlreadySold = errors.New("lead already sold to this buyer")

	// Retorno de um lead que não está em delivered (pending, returned...).
	ErrLeadNotReturnable = errors.New("lead is not in delivered status")
)
