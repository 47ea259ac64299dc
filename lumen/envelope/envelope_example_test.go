package envelope_test

import (
	"fmt"

	"github.com/lumenpay/lib-lumen/lumen/envelope"
)

func ExampleSelectOperation() {
	existing := envelope.SelectOperation(true, "GDQNY3PBOJOKYZSRMK2S7LHHGWZIUISD4QORETLMXEWXBI7KFZZMKTL3", "10")
	unseen := envelope.SelectOperation(false, "GDQNY3PBOJOKYZSRMK2S7LHHGWZIUISD4QORETLMXEWXBI7KFZZMKTL3", "10")

	fmt.Println(existing.Kind)
	fmt.Println(unseen.Kind)

	// Output:
	// payment
	// create_account
}

func ExampleBuild() {
	unsigned, err := envelope.Build(envelope.Params{
		Source:            "GA5ZSEJYB37JRC5AVCIA5MOP4RHTM335X2KGX3IHOJAPP5RE34K4KZVN",
		Sequence:          41,
		Destination:       "GDQNY3PBOJOKYZSRMK2S7LHHGWZIUISD4QORETLMXEWXBI7KFZZMKTL3",
		Amount:            "10",
		DestinationExists: true,
		NetworkPassphrase: "Test SDF Network ; September 2015",
	})

	fmt.Println(err == nil)
	fmt.Println(unsigned.Kind)
	fmt.Println(unsigned.Sequence)

	// Output:
	// true
	// payment
	// 42
}
