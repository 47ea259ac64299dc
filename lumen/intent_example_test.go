package lumen_test

import (
	"errors"
	"fmt"

	"github.com/lumenpay/lib-lumen/lumen"
)

func ExamplePaymentIntent_Validate() {
	valid := lumen.PaymentIntent{
		Sender:    "GA5ZSEJYB37JRC5AVCIA5MOP4RHTM335X2KGX3IHOJAPP5RE34K4KZVN",
		Recipient: "GDQNY3PBOJOKYZSRMK2S7LHHGWZIUISD4QORETLMXEWXBI7KFZZMKTL3",
		Amount:    "10.5",
	}

	selfPay := valid
	selfPay.Recipient = selfPay.Sender

	fmt.Println(valid.Validate() == nil)
	fmt.Println(errors.Is(selfPay.Validate(), lumen.ErrSelfPayment))

	// Output:
	// true
	// true
}
