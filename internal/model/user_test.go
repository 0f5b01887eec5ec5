package model

import "testing"

func TestIsProfileComplete(t *testing.T) {
	base := User{
		FirstName:   "Ayesha",
		LastName:    "Khan",
		PhoneNumber: "+923001234567",
		Address:     "House 12, Street 4",
		City:        "Karachi",
		UserType:    UserTypeCommon,
	}

	tests := []struct {
		name   string
		modify func(u *User)
		want   bool
	}{
		{
			name:   "common user with all required fields",
			modify: func(u *User) {},
			want:   true,
		},
		{
			name:   "missing phone number",
			modify: func(u *User) { u.PhoneNumber = "" },
			want:   false,
		},
		{
			name:   "whitespace-only city",
			modify: func(u *User) { u.City = "   " },
			want:   false,
		},
		{
			name:   "car owner without vehicle type",
			modify: func(u *User) { u.UserType = UserTypeCarOwner },
			want:   false,
		},
		{
			name: "car owner with vehicle type",
			modify: func(u *User) {
				u.UserType = UserTypeCarOwner
				u.VehicleType = "sedan"
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := base
			tt.modify(&user)
			if got := user.IsProfileComplete(); got != tt.want {
				t.Errorf("IsProfileComplete() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetFullName(t *testing.T) {
	u := User{FirstName: "Ayesha", LastName: "Khan"}
	if got := u.GetFullName(); got != "Ayesha Khan" {
		t.Errorf("GetFullName() = %q", got)
	}

	u = User{FirstName: "Ayesha"}
	if got := u.GetFullName(); got != "Ayesha" {
		t.Errorf("GetFullName() = %q, want no trailing space", got)
	}
}
