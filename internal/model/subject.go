package model

// SubjectCatalog is the fixed list of subjects offered by the portal. It is
// served to clients for building the ask form; question subjects are not
// validated against it server-side, so historical questions survive catalog
// edits.
var SubjectCatalog = []string{
	"Statistical and Numerical Techniques",
	"Computer Architecture and Microprocessor Interfacing",
	"Computer Networks",
	"Design and Analysis of Algorithms",
	"Full Stack Web Development",
	"Human Values and Professional Ethics",
	"Mobile Application Development",
	"Cryptography & Network Security",
	"Machine Learning",
	"Contributory Personality Development",
}
