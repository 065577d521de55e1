package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestRegister_Idempotent(t *testing.T) {
	reg := prometheus.NewRegistry()

	if err := Register(reg); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := Register(reg); err != nil {
		t.Fatalf("second register: %v", err)
	}

	LoginAttemptsTotal.WithLabelValues("success").Inc()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "tasks_login_attempts_total" {
			found = true
		}
	}
	if !found {
		t.Fatalf("tasks_login_attempts_total not gathered from injected registry")
	}
}
