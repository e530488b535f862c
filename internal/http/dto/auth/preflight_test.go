package auth

import (
	"encoding/json"
	"testing"
)

func TestPreflightResponse_MarshalNullCode(t *testing.T) {
	b, err := json.Marshal(PreflightResponse{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"code":null}` {
		t.Fatalf("json = %s, esperado {\"code\":null}", b)
	}
}

func TestPreflightResponse_MarshalEmptyProviders(t *testing.T) {
	// Usuario cuyo único proveedor vinculado está deshabilitado globalmente:
	// el código genérico viaja con la lista vacía, nunca sin ella.
	code := "OAUTH_ONLY"
	b, err := json.Marshal(PreflightResponse{Code: &code})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"code":"OAUTH_ONLY","providers":[]}` {
		t.Fatalf("json = %s, esperado providers:[] explícito", b)
	}
}

func TestPreflightResponse_MarshalWithProviders(t *testing.T) {
	code := "OAUTH_ONLY"
	b, err := json.Marshal(PreflightResponse{Code: &code, Providers: []string{"google", "steam"}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"code":"OAUTH_ONLY","providers":["google","steam"]}` {
		t.Fatalf("json = %s", b)
	}
}
