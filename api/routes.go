package api

const (
	// PingEndpoint is the endpoint for checking the API status
	PingEndpoint = "/ping"
	// ConstraintsEndpoint checks whether a set of parameters defines a
	// non-singular curve, without building it.
	ConstraintsEndpoint = "/constraints"
	// CurvesEndpoint builds a curve group (POST) or lists the stored ones (GET)
	CurvesEndpoint = "/curves"
	// CurveEndpoint returns the info of a built curve
	CurveURLParam = "curveId"
	CurveEndpoint = "/curves/{" + CurveURLParam + "}"
	// KeysEndpoint generates (POST) or lists (GET) the ElGamal key pairs of a curve
	KeysEndpoint = CurveEndpoint + "/keys"
	// KeyEndpoint returns the public part of a stored key pair
	KeyURLParam = "keyId"
	KeyEndpoint = KeysEndpoint + "/{" + KeyURLParam + "}"
	// EncryptEndpoint and DecryptEndpoint run ElGamal on the curve group
	EncryptEndpoint = CurveEndpoint + "/encrypt"
	DecryptEndpoint = CurveEndpoint + "/decrypt"
	// AddEndpoint and MultEndpoint expose the raw point arithmetic
	AddEndpoint  = CurveEndpoint + "/add"
	MultEndpoint = CurveEndpoint + "/mult"
)
