package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/Apurer/petcare-api/internal/domains/orders/ports"
)

type normalizedCommand struct {
	Customer string           `json:"customer"`
	Lines    []normalizedLine `json:"lines"`
	Shipping normalizedShip   `json:"shipping"`
}

type normalizedLine struct {
	Type     string `json:"type"`
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

type normalizedShip struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// Fingerprint hashes the checkout request for a customer, excluding the idempotency key.
// Line order is significant because lines are processed in input order.
func Fingerprint(customer string, cmd ports.PlaceOrderCommand) (string, error) {
	normalized := normalizedCommand{
		Customer: strings.ToLower(strings.TrimSpace(customer)),
		Lines:    make([]normalizedLine, 0, len(cmd.Lines)),
		Shipping: normalizedShip{
			Name:    strings.TrimSpace(cmd.Shipping.Name),
			Address: strings.TrimSpace(cmd.Shipping.Address),
			Phone:   strings.TrimSpace(cmd.Shipping.Phone),
		},
	}
	for _, l := range cmd.Lines {
		normalized.Lines = append(normalized.Lines, normalizedLine{
			Type:     strings.ToLower(strings.TrimSpace(l.ItemType)),
			ID:       strings.TrimSpace(l.ItemID),
			Quantity: l.Quantity,
		})
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
