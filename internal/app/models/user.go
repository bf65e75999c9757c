package models

import "go.mongodb.org/mongo-driver/bson"

// User is an account in the local credential store. PatientPN or DoctorID
// links the account to its clinical record, depending on Role.
type User struct {
	ID        string `bson:"_id,omitempty" json:"id"`
	Username  string `bson:"username" json:"username"`
	Password  string `bson:"password" json:"-"`
	Role      string `bson:"role" json:"role"`
	PatientPN string `bson:"patientPN,omitempty" json:"patient_pn,omitempty"`
	DoctorID  string `bson:"doctorID,omitempty" json:"doctor_id,omitempty"`
}

func (u *User) ConvertToBsonM() bson.M {
	return bson.M{
		"username":  u.Username,
		"password":  u.Password,
		"role":      u.Role,
		"patientPN": u.PatientPN,
		"doctorID":  u.DoctorID,
	}
}
