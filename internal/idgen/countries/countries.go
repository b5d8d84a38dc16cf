// Package countries maps ISO 3166-1 alpha-2 codes to English display names.
package countries

import "strings"

var names = map[string]string{
	"AD": "Andorra", "AE": "United Arab Emirates", "AL": "Albania", "AR": "Argentina",
	"AT": "Austria", "AU": "Australia", "AZ": "Azerbaijan", "BA": "Bosnia and Herzegovina",
	"BD": "Bangladesh", "BE": "Belgium", "BG": "Bulgaria", "BH": "Bahrain",
	"BR": "Brazil", "BY": "Belarus", "CA": "Canada", "CH": "Switzerland",
	"CL": "Chile", "CN": "China", "CO": "Colombia", "CR": "Costa Rica",
	"CY": "Cyprus", "CZ": "Czechia", "DE": "Germany", "DK": "Denmark",
	"DO": "Dominican Republic", "DZ": "Algeria", "EE": "Estonia", "EG": "Egypt",
	"ES": "Spain", "FI": "Finland", "FO": "Faroe Islands", "FR": "France",
	"GB": "United Kingdom", "GE": "Georgia", "GI": "Gibraltar", "GL": "Greenland",
	"GR": "Greece", "GT": "Guatemala", "HK": "Hong Kong", "HR": "Croatia",
	"HU": "Hungary", "ID": "Indonesia", "IE": "Ireland", "IL": "Israel",
	"IN": "India", "IQ": "Iraq", "IS": "Iceland", "IT": "Italy",
	"JO": "Jordan", "JP": "Japan", "KE": "Kenya", "KR": "South Korea",
	"KW": "Kuwait", "KZ": "Kazakhstan", "LB": "Lebanon", "LI": "Liechtenstein",
	"LT": "Lithuania", "LU": "Luxembourg", "LV": "Latvia", "MA": "Morocco",
	"MC": "Monaco", "MD": "Moldova", "ME": "Montenegro", "MK": "North Macedonia",
	"MT": "Malta", "MU": "Mauritius", "MX": "Mexico", "MY": "Malaysia",
	"NG": "Nigeria", "NL": "Netherlands", "NO": "Norway", "NZ": "New Zealand",
	"PE": "Peru", "PH": "Philippines", "PK": "Pakistan", "PL": "Poland",
	"PS": "Palestine", "PT": "Portugal", "QA": "Qatar", "RO": "Romania",
	"RS": "Serbia", "RU": "Russia", "SA": "Saudi Arabia", "SC": "Seychelles",
	"SE": "Sweden", "SG": "Singapore", "SI": "Slovenia", "SK": "Slovakia",
	"SM": "San Marino", "TH": "Thailand", "TN": "Tunisia", "TR": "Turkey",
	"TW": "Taiwan", "UA": "Ukraine", "US": "United States", "UY": "Uruguay",
	"VA": "Vatican City", "VG": "British Virgin Islands", "VN": "Vietnam", "XK": "Kosovo",
	"ZA": "South Africa",
}

// Name returns the display name for code, or code itself when unknown.
func Name(code string) string {
	if n, ok := names[strings.ToUpper(code)]; ok {
		return n
	}
	return code
}

// Known reports whether code is a recognised country code.
func Known(code string) bool {
	_, ok := names[strings.ToUpper(code)]
	return ok
}
