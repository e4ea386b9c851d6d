package assertion

// ConstructorName is the simple name resolved symbols use for
// constructors.
const ConstructorName = "<init>"

const restAssuredResponse = "io.restassured.response.ValidatableResponseOptions"

// Builtin is the table of known assertion entry points: fluent
// assertion base types, response-validation builders, Spring MVC
// result expectations, and mocking-verification constructors. It is
// constructed once and never mutated.
var Builtin = MatcherSet{
	// FEST 1.x / 2.x
	{Type: SubtypeOf("org.fest.assertions.GenericAssert"), Name: AnyName()},
	{Type: SubtypeOf("org.fest.assertions.api.AbstractAssert"), Name: AnyName()},
	// RestAssured 2.x
	{Type: ExactType(restAssuredResponse), Name: ExactName("body")},
	{Type: ExactType(restAssuredResponse), Name: ExactName("time")},
	{Type: ExactType(restAssuredResponse), Name: PrefixName("content")},
	{Type: ExactType(restAssuredResponse), Name: PrefixName("status")},
	{Type: ExactType(restAssuredResponse), Name: PrefixName("header")},
	{Type: ExactType(restAssuredResponse), Name: PrefixName("cookie")},
	{Type: ExactType(restAssuredResponse), Name: PrefixName("spec")},
	// AssertJ
	{Type: SubtypeOf("org.assertj.core.api.AbstractAssert"), Name: AnyName()},
	// Spring MVC
	{Type: ExactType("org.springframework.test.web.servlet.ResultActions"), Name: ExactName("andExpect")},
	// JMockit
	{Type: ExactType("mockit.Verifications"), Name: ExactName(ConstructorName)},
}
