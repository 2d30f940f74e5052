package services

import (
	"strings"
	"testing"
	"time"
)

func TestRenderTemplate(t *testing.T) {
	date := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	tpl := "Olá {nome}, seu agendamento de {servico} está confirmado para {data} às {hora}."

	got := RenderTemplate(tpl, "Maria", "Corte", date)
	want := "Olá Maria, seu agendamento de Corte está confirmado para 10/03/2026 às 14:30."
	if got != want {
		t.Errorf("RenderTemplate = %q, want %q", got, want)
	}
}

func TestRenderTemplateRepeatedPlaceholders(t *testing.T) {
	date := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	got := RenderTemplate("{nome} {nome}", "Maria", "Corte", date)
	if got != "Maria Maria" {
		t.Errorf("RenderTemplate = %q, want every occurrence replaced", got)
	}
}

func TestComposeCancellation(t *testing.T) {
	date := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	msg := ComposeCancellation("Maria", "Corte", date, "Studio Ana")

	for _, part := range []string{"Maria", "CANCELADO", "10/03/2026", "14:30", "Corte", "Studio Ana"} {
		if !strings.Contains(msg, part) {
			t.Errorf("cancellation notice missing %q:\n%s", part, msg)
		}
	}

	if strings.Contains(ComposeCancellation("Maria", "Corte", date, ""), "\n\n\n") {
		t.Error("empty salon name leaves a dangling signature block")
	}
}
