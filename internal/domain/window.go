package domain

import (
	"fmt"
	"time"
)

// ISOMillisOffset é o formato canônico de datas trocado com o front-end e com
// a API do Mercado Livre: ISO-8601 com milissegundos e offset explícito.
const ISOMillisOffset = "2006-01-02T15:04:05.000-07:00"

// DefaultWindowDays é o período aplicado quando a requisição não traz datas.
const DefaultWindowDays = 30

// DateWindow é o período de agregação. From nunca é posterior a To.
type DateWindow struct {
	From time.Time
	To   time.Time
}

// NewDateWindow valida e constrói uma janela de datas.
func NewDateWindow(from, to time.Time) (DateWindow, error) {
	if from.After(to) {
		return DateWindow{}, fmt.Errorf("a data de início não pode ser posterior à data de fim")
	}
	return DateWindow{From: from, To: to}, nil
}

// DefaultDateWindow retorna os últimos 30 dias terminando em now.
func DefaultDateWindow(now time.Time) DateWindow {
	return DateWindow{From: now.AddDate(0, 0, -DefaultWindowDays), To: now}
}

// ParseDateRange converte o par begin/end enviado pelo cliente. Aceita o
// formato canônico e RFC3339 puro.
func ParseDateRange(begin, end string) (DateWindow, error) {
	from, err := parseISODate(begin)
	if err != nil {
		return DateWindow{}, fmt.Errorf("data inicial inválida: %w", err)
	}

	to, err := parseISODate(end)
	if err != nil {
		return DateWindow{}, fmt.Errorf("data final inválida: %w", err)
	}

	return NewDateWindow(from, to)
}

func parseISODate(value string) (time.Time, error) {
	if t, err := time.Parse(ISOMillisOffset, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// FromISO retorna a data inicial normalizada no formato canônico.
func (w DateWindow) FromISO() string {
	return w.From.Format(ISOMillisOffset)
}

// ToISO retorna a data final normalizada no formato canônico.
func (w DateWindow) ToISO() string {
	return w.To.Format(ISOMillisOffset)
}

// Contains verifica se o instante pertence à janela (inclusive nas bordas).
func (w DateWindow) Contains(t time.Time) bool {
	return !t.Before(w.From) && !t.After(w.To)
}

// Previous deriva a janela equivalente imediatamente anterior, com a mesma
// duração, usada na comparação com o período passado.
func (w DateWindow) Previous() DateWindow {
	span := w.To.Sub(w.From)
	return DateWindow{From: w.From.Add(-span), To: w.From}
}
