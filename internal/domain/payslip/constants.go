package payslip

const (
	LogoPlaceholder      = "file:///assets/logo.png"
	WatermarkPlaceholder = "file:///assets/watermark.png"

	Title      = "PAYSLIP"
	FooterNote = "This is a computer generated payslip and does not require a signature."
)
