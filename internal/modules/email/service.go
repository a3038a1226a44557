package email

type Service interface {
	SendEmail(to string, toName string, subject string, htmlBody string, textBody string) error
}

// SendPaymentReceipt mails the payer after a payment is confirmed by the
// gateway callback. Registered as the "payment_receipt_email" success hook.
func SendPaymentReceipt(svc Service, payerEmail string, payerName string, paymentID string, transactionID string, amount string) error {
	subject := "Payment received - " + paymentID

	textBody := "Hello " + payerName + ",\n\n" +
		"We received your payment.\n\n" +
		"Payment: " + paymentID + "\n" +
		"Transaction: " + transactionID + "\n" +
		"Amount: " + amount + "\n\n" +
		"Thank you!"

	htmlBody := `
<html>
  <body style="font-family: sans-serif;">
    <h2>Payment received</h2>
    <p>Hello ` + payerName + `,</p>
    <p>We received your payment.</p>
    <p><strong>Payment:</strong> ` + paymentID + `</p>
    <p><strong>Transaction:</strong> ` + transactionID + `</p>
    <p><strong>Amount:</strong> ` + amount + `</p>
    <p>Thank you!</p>
  </body>
</html>
`

	return svc.SendEmail(payerEmail, payerName, subject, htmlBody, textBody)
}
