package validation

import "testing"

func TestValidateRegistration(t *testing.T) {
	cases := []struct {
		name  string
		in    RegistrationInput
		want  []string
		minPW int
	}{
		{name: "valid", in: RegistrationInput{Name: "Alice", Email: "a@b.com", Password: "correct horse"}, minPW: 8},
		{name: "missing name", in: RegistrationInput{Name: "  ", Email: "a@b.com", Password: "correct horse"}, minPW: 8, want: []string{FieldName}},
		{name: "bad email", in: RegistrationInput{Name: "Alice", Email: "a@", Password: "correct horse"}, minPW: 8, want: []string{FieldEmail}},
		{name: "short password", in: RegistrationInput{Name: "Alice", Email: "a@b.com", Password: "pw"}, minPW: 8, want: []string{FieldPassword}},
		{name: "runes not bytes", in: RegistrationInput{Name: "Alice", Email: "a@b.com", Password: "ééé"}, minPW: 4, want: []string{FieldPassword}},
		{name: "everything wrong", in: RegistrationInput{}, minPW: 1, want: []string{FieldName, FieldEmail, FieldPassword}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := ValidateRegistration(tc.in, tc.minPW)
			if errs.Len() != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, errs)
			}
			for _, f := range tc.want {
				if !errs.Has(f) {
					t.Fatalf("expected %s error, got %v", f, errs)
				}
			}
		})
	}

	errs := ValidateRegistration(RegistrationInput{Name: "A", Email: "a@b.com", Password: "x"}, 12)
	if msg, _ := errs.Get(FieldPassword); msg != "Password must be at least 12 characters" {
		t.Fatalf("unexpected message %q", msg)
	}
}
