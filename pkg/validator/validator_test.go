package validator

import "testing"

func TestValidateStruct(t *testing.T) {
	type registerRequest struct {
		Username string `json:"username" validate:"required,username"`
		Password string `json:"password" validate:"required,min=8"`
	}

	tests := []struct {
		name    string
		req     registerRequest
		wantErr bool
	}{
		{"valid", registerRequest{Username: "alice", Password: "secret1234"}, false},
		{"missing username", registerRequest{Password: "secret1234"}, true},
		{"missing password", registerRequest{Username: "alice"}, true},
		{"short password", registerRequest{Username: "alice", Password: "short"}, true},
		{"bad username", registerRequest{Username: "a b!", Password: "secret1234"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStruct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateStructMax(t *testing.T) {
	type feedbackRequest struct {
		Feedback string `validate:"required,max=10"`
	}

	if err := ValidateStruct(&feedbackRequest{Feedback: "short"}); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	if err := ValidateStruct(&feedbackRequest{Feedback: "way too long value"}); err == nil {
		t.Error("Expected error for value over max length")
	}
}

func TestValidateUsername(t *testing.T) {
	valid := []string{"alice", "bob.smith", "user_1", "a-b-c", "abc"}
	for _, username := range valid {
		if err := ValidateUsername(username); err != nil {
			t.Errorf("Expected %q to be valid, got %v", username, err)
		}
	}

	invalid := []string{"", "ab", "has space", "ümlaut", "semi;colon"}
	for _, username := range invalid {
		if err := ValidateUsername(username); err == nil {
			t.Errorf("Expected %q to be invalid", username)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("longenough"); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	if err := ValidatePassword(""); err == nil {
		t.Error("Expected error for empty password")
	}

	if err := ValidatePassword("short"); err == nil {
		t.Error("Expected error for short password")
	}
}
