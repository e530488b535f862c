package password

import (
	"strings"
	"testing"
)

func TestHashVerify_RoundTrip(t *testing.T) {
	phc, err := Hash(Default, "hunter2222")
	if err != nil {
		t.Fatalf("Hash err: %v", err)
	}
	if !strings.HasPrefix(phc, "$argon2id$") {
		t.Fatalf("formato PHC inesperado: %q", phc)
	}
	if !Verify("hunter2222", phc) {
		t.Fatal("la contraseña correcta debería verificar")
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	phc, err := Hash(Default, "hunter2222")
	if err != nil {
		t.Fatalf("Hash err: %v", err)
	}
	if Verify("wrong", phc) {
		t.Fatal("una contraseña incorrecta no debería verificar")
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	for _, phc := range []string{"", "no-es-phc", "$argon2id$truncado"} {
		if Verify("x", phc) {
			t.Fatalf("hash malformado %q no debería verificar", phc)
		}
	}
}

func TestHash_SaltedOutputsDiffer(t *testing.T) {
	a, err := Hash(Default, "hunter2222")
	if err != nil {
		t.Fatalf("Hash err: %v", err)
	}
	b, err := Hash(Default, "hunter2222")
	if err != nil {
		t.Fatalf("Hash err: %v", err)
	}
	if a == b {
		t.Fatal("dos hashes de la misma contraseña deberían diferir por el salt")
	}
}
