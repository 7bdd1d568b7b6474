package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"huddle/internal/apperr"
	"huddle/internal/models"
)

func TestCodecRoundtrip(t *testing.T) {
	codec, err := NewCodec("secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	id := Identity{ID: uuid.New(), Email: "eve@acme.test", Role: models.RoleEmployee}
	token, err := codec.Issue(id)
	if err != nil {
		t.Fatal(err)
	}

	claims, err := codec.Verify(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.ID != id.ID || claims.Email != id.Email || claims.Role != id.Role {
		t.Fatalf("claims = %+v, want %+v", claims, id)
	}
}

func TestCodecRejectsEmptySecret(t *testing.T) {
	if _, err := NewCodec("", time.Hour); err == nil {
		t.Fatal("empty secret must be rejected at construction")
	}
	if _, err := NewCodec("   ", time.Hour); err == nil {
		t.Fatal("blank secret must be rejected at construction")
	}
}

// Malformed, forged and expired tokens all produce the same unauthorized
// rejection; nothing tells the caller which case it hit.
func TestVerifyRejections(t *testing.T) {
	codec, err := NewCodec("secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	other, err := NewCodec("other-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	id := Identity{ID: uuid.New(), Email: "eve@acme.test", Role: models.RoleEmployee}

	forged, err := other.Issue(id)
	if err != nil {
		t.Fatal(err)
	}

	expiredCodec, err := NewCodec("secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	expiredCodec.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredCodec.Issue(id)
	if err != nil {
		t.Fatal(err)
	}

	for name, token := range map[string]string{
		"malformed": "not.a.token",
		"empty":     "",
		"forged":    forged,
		"expired":   expired,
	} {
		_, err := codec.Verify(token)
		if err == nil {
			t.Fatalf("%s token accepted", name)
		}
		if !errors.Is(err, apperr.Unauthorized("")) {
			t.Fatalf("%s token: error = %v, want unauthorized", name, err)
		}
	}
}

func TestVerifyRejectsUnknownRole(t *testing.T) {
	codec, err := NewCodec("secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	token, err := codec.Issue(Identity{ID: uuid.New(), Email: "x@y.z", Role: models.Role("superuser")})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := codec.Verify(token); err == nil {
		t.Fatal("token with unknown role accepted")
	}
}
