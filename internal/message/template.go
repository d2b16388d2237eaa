package message

// Delimiter must appear in a configured template, otherwise FallbackTemplate is used.
const Delimiter = "---"

// DefaultTemplate is the template a fresh restaurant config starts with
const DefaultTemplate = `*New order: {customerName} | {branch}*

*Order type:* {orderType}
----------------------------------
{items}
----------------------------------
*Delivery fee: {deliveryFee} SAR*
*Grand total: {total} SAR*

*Delivery location:* {customerLocation}
*Notes:* {customerNotes}`

// FallbackTemplate replaces configured templates that lack the delimiter
const FallbackTemplate = `Hello, I would like to order:
{items}

------------------
*Subtotal: {subtotal} SAR*
*Delivery: {deliveryFee} SAR*
*Total: {total} SAR*
------------------

Order type: {orderType}
Branch: {branch}

Customer details:
Name: {customerName}
Phone: {customerPhone}
Location: {customerLocation}
Notes: {customerNotes}`

const (
	deliveryLabel = "Home delivery"
	pickupLabel   = "Pickup from branch"

	anonymousName   = "Valued customer"
	pickupLocation  = "Customer will pick up from the branch"
	missingLocation = "Not specified"
	missingNotes    = "None"
	currency        = "SAR"
)
