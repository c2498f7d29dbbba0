package config

import (
	"fmt"
	"os"
	"strconv"
)

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

// TicketPrice is the flat summit admission price in MWK,
// overridable through TICKET_PRICE.
func TicketPrice() uint {
	priceEnv := os.Getenv("TICKET_PRICE")
	price, err := strconv.Atoi(priceEnv)
	if err != nil || price <= 0 {
		return 5000
	}
	return uint(price)
}

const TicketCurrency = "MWK"

// PublicHost is the externally reachable base URL used when composing
// ticket links for emails.
func PublicHost() string {
	host := os.Getenv("PUBLIC_HOST")
	if host == "" {
		host = "http://localhost:9090"
	}
	return host
}
