package service

import "fmt"

func purchaseConfirmationTemplate(productName, appName string) (string, string) {
	subject := fmt.Sprintf("Your %s purchase is confirmed", appName)
	body := fmt.Sprintf(`<p>Thanks for your purchase!</p>

<p>Your payment for <strong>%s</strong> went through and your order is confirmed.
A receipt has been issued by our payment processor.</p>

<p>If you have questions, just reply to this email.</p>

<p>Best,<br>The %s Team</p>`, productName, appName)

	return subject, body
}

func operatorSaleAlertTemplate(customerEmail, productName, appName string) (string, string) {
	subject := fmt.Sprintf("New sale on %s", appName)
	body := fmt.Sprintf(`<p>A checkout just completed.</p>

<ul>
<li>Customer: %s</li>
<li>Product: %s</li>
</ul>`, customerEmail, productName)

	return subject, body
}
