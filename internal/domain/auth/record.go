package auth

import (
	"encoding/json"
	"fmt"
)

// RecordVersion is the current persisted auth record schema version.
// Records with any other version decode as invalid and are treated as absent.
const RecordVersion = 1

// AuthRecord is the persisted snapshot of the current session, minus live
// key material. Exactly one record exists per store; it is created on login,
// overwritten on nickname change, and deleted on logout or failed restore.
type AuthRecord struct {
	Version   int      `json:"v"`
	UserType  UserType `json:"userType"`
	UserID    string   `json:"userId"`
	AuthType  AuthType `json:"authType"`
	Nickname  string   `json:"nickname"`
	SessionID string   `json:"sessionId,omitempty"`
}

// EncodeRecord serializes r, stamping the current schema version.
func EncodeRecord(r AuthRecord) ([]byte, error) {
	r.Version = RecordVersion
	if err := validateRecord(r); err != nil {
		return nil, err
	}
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal auth record: %w", err)
	}
	return data, nil
}

// DecodeRecord parses a persisted record. Unknown versions and unknown tags
// are rejected with ErrRecordInvalid rather than best-effort recovered.
func DecodeRecord(data []byte) (AuthRecord, error) {
	var r AuthRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return AuthRecord{}, fmt.Errorf("%w: %v", ErrRecordInvalid, err)
	}
	if r.Version != RecordVersion {
		return AuthRecord{}, fmt.Errorf("%w: unsupported version %d", ErrRecordInvalid, r.Version)
	}
	if err := validateRecord(r); err != nil {
		return AuthRecord{}, err
	}
	return r, nil
}

func validateRecord(r AuthRecord) error {
	switch r.UserType {
	case UserAnonymous, UserPrincipal, UserEmail:
	default:
		return fmt.Errorf("%w: unknown user type %q", ErrRecordInvalid, r.UserType)
	}
	switch r.AuthType {
	case AuthAnonymous, AuthPrincipal, AuthGoogle, AuthApple:
	default:
		return fmt.Errorf("%w: unknown auth type %q", ErrRecordInvalid, r.AuthType)
	}
	if r.UserType == UserEmail && r.SessionID == "" {
		return fmt.Errorf("%w: email record without session ticket", ErrRecordInvalid)
	}
	return nil
}

// State maps the record back to its session state variant.
func (r AuthRecord) State() SessionState {
	switch r.UserType {
	case UserPrincipal:
		return DecentralizedIdentity{PrincipalID: r.UserID}
	case UserEmail:
		return ProviderSession{
			SessionID: r.SessionID,
			Email:     r.UserID,
			Provider:  Provider(r.AuthType),
		}
	default:
		return Anonymous{}
	}
}
