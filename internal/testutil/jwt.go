package testutil

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// GenerateTestKeyPair generates an RSA key pair for testing JWT tokens
func GenerateTestKeyPair(t *testing.T) (*rsa.PrivateKey, *rsa.PublicKey) {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("Failed to generate RSA key: %v", err)
	}
	return privateKey, &privateKey.PublicKey
}

// GenerateTestJWT creates a valid JWT token for E2E testing
// This generates a token with the specified user ID, facility claims, and roles
func GenerateTestJWT(t *testing.T, privateKey *rsa.PrivateKey, userID string, hospitalID, nodalID int64, roles []string) string {
	t.Helper()

	// Create claims matching the auth system
	claims := jwt.MapClaims{
		"sub": userID,
		"iss": "https://test-keycloak.com/realms/test",
		"exp": time.Now().Add(1 * time.Hour).Unix(),
		"iat": time.Now().Unix(),
		"realm_access": map[string]interface{}{
			"roles": interfaceSlice(roles),
		},
	}

	// Add facility claims if provided
	if hospitalID != 0 {
		claims["hospital_id"] = hospitalID
	}
	if nodalID != 0 {
		claims["nodal_id"] = nodalID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = "test-key-id"

	tokenString, err := token.SignedString(privateKey)
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}

	return tokenString
}

// GenerateLabAdminToken creates a LAB_ADMIN token for testing
func GenerateLabAdminToken(t *testing.T, privateKey *rsa.PrivateKey, hospitalID int64) string {
	t.Helper()
	return GenerateTestJWT(t, privateKey, "labadmin-123", hospitalID, 0, []string{"LAB_ADMIN"})
}

// GenerateFrontDeskToken creates a FRONT_DESK token for testing
func GenerateFrontDeskToken(t *testing.T, privateKey *rsa.PrivateKey, hospitalID, nodalID int64) string {
	t.Helper()
	return GenerateTestJWT(t, privateKey, "frontdesk-123", hospitalID, nodalID, []string{"FRONT_DESK"})
}

// GenerateTechnicianToken creates a TECHNICIAN token for testing
func GenerateTechnicianToken(t *testing.T, privateKey *rsa.PrivateKey, hospitalID int64) string {
	t.Helper()
	return GenerateTestJWT(t, privateKey, "technician-123", hospitalID, 0, []string{"TECHNICIAN"})
}

// GenerateDoctorToken creates a DOCTOR token for testing
func GenerateDoctorToken(t *testing.T, privateKey *rsa.PrivateKey, hospitalID int64) string {
	t.Helper()
	return GenerateTestJWT(t, privateKey, "doctor-123", hospitalID, 0, []string{"DOCTOR"})
}

// interfaceSlice converts []string to []interface{} for JWT claims
func interfaceSlice(strings []string) []interface{} {
	result := make([]interface{}, len(strings))
	for i, s := range strings {
		result[i] = s
	}
	return result
}
