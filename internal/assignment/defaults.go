package assignment

// Default returns the directory loaded with the production ERP module
// ownership tables.
func Default() *Directory {
	return NewDirectory(defaultSupportByModule, defaultDeveloperByModule, defaultEmailByDeveloper)
}

var defaultSupportByModule = map[string]string{
	"PO": "Seenivasan", "Invy": "Seenivasan", "RMI": "Seenivasan",
	"Paper RMI": "Muthuvel", "HT RMI": "Seenivasan", "WVG Yinvy": "Seenivasan",
	"Knitting Yinvy": "Seenivasan", "Import": "Seenivasan", "Paper Import": "Seenivasan",
	"PPC": "Vignesh", "Pre Spg": "Vignesh", "Spg": "Vignesh",
	"Post Spg": "Vignesh", "QC": "Vignesh", "Knitting Prodn": "Vignesh",
	"WVG Prep": "Vignesh", "WVG Prodn": "Vignesh", "Paper Prodn": "Vignesh",
	"HT Prodn": "Vignesh", "MMS": "Mariyaiya", "EMS": "Mariyaiya",
	"Power": "Mariyaiya", "DSales": "Seenivasan", "Paper Sales": "Seenivasan",
	"WSales": "Seenivasan", "SSales": "Seenivasan", "ESales": "Seenivasan",
	"WVG ESales": "Seenivasan", "Knitting Sales": "Seenivasan", "WVG Sales": "Seenivasan",
	"HT Sales": "Seenivasan", "Payroll": "Palanivel", "HR": "Palanivel",
	"Canteen": "Seenivasan", "GMS": "Seenivasan", "FA": "Palanivel",
	"FAD": "Palanivel", "Costing": "Palanivel", "MIS": "Palanivel",
	"WVG MIS": "Palanivel", "Txn Approval": "Seenivasan", "Web Reports": "Seenivasan",
	"System Admin": "Seenivasan", "User Rights": "Palanivel", "Automail": "Seenivasan",
}

var defaultDeveloperByModule = map[string]string{
	"PO": "Mariyaiya", "Invy": "Mariyaiya", "RMI": "Mariyaiya",
	"Paper RMI": "Mariyaiya", "HT RMI": "Mariyaiya", "WVG Yinvy": "Mariyaiya",
	"Knitting Yinvy": "Mariyaiya", "Import": "Sasi", "Paper Import": "Sasi",
	"PPC": "Annamalai", "Pre Spg": "Annamalai", "Spg": "Annamalai",
	"Post Spg": "Annamalai", "QC": "Annamalai", "Knitting Prodn": "Annamalai",
	"WVG Prep": "Annamalai", "WVG Prodn": "Annamalai", "Paper Prodn": "Annamalai",
	"HT Prodn": "Mariya", "MMS": "Mariyaiya", "EMS": "Mariyaiya",
	"Power": "Mariyaiya", "DSales": "Annamalai", "Paper Sales": "Annamalai",
	"WSales": "Annamalai", "SSales": "Annamalai", "ESales": "Annamalai",
	"WVG ESales": "Annamalai", "Knitting Sales": "Annamalai", "WVG Sales": "Annamalai",
	"HT Sales": "Mariya", "Payroll": "Sasi", "HR": "Sasi",
	"Canteen": "Mariyaiya", "GMS": "Mariyaiya", "FA": "Sasi",
	"FAD": "Sasi", "Costing": "Sasi", "MIS": "Mariya",
	"WVG MIS": "Sasi", "PO Approval": "Mohan Babu", "Txn Approval": "Mohan Babu",
	"Web Reports": "Mohan Babu", "System Admin": "Sasi", "User Rights": "Mariya",
	"Automail": "Mohan Babu", "All Modules Report": "Udhay", "FGI": "Annamalai",
	"PPS": "Mariya", "CSM": "Mohan Babu",
}

var defaultEmailByDeveloper = map[string]string{
	"Mariyaiya":  "mariyaiya.m@kalsofte.com",
	"Annamalai":  "annamalai.s@kalsofte.com",
	"Sasi":       "sasikumar.r@kalsofte.com",
	"Mariya":     "maria@kalsofte.com",
	"Mohan Babu": "mohanbabuvn@kalsofte.com",
	"Udhay":      "udhay@kalsofte.com",
}
