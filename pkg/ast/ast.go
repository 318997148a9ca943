package ast

import "lox/interpreter-go/pkg/token"

type NodeType string

const (
	NodeNumberLiteral  NodeType = "NumberLiteral"
	NodeStringLiteral  NodeType = "StringLiteral"
	NodeBooleanLiteral NodeType = "BooleanLiteral"
	NodeNilLiteral     NodeType = "NilLiteral"
	NodeVariable       NodeType = "Variable"
	NodeAssign         NodeType = "Assign"
	NodeGet            NodeType = "Get"
	NodeSet            NodeType = "Set"
	NodeGrouping       NodeType = "Grouping"
	NodeLogical        NodeType = "Logical"
	NodeUnary          NodeType = "Unary"
	NodeBinary         NodeType = "Binary"
	NodeCall           NodeType = "Call"
	NodeThis           NodeType = "This"
	NodePrintStmt      NodeType = "PrintStmt"
	NodeExpressionStmt NodeType = "ExpressionStmt"
	NodeVarDecl        NodeType = "VarDecl"
	NodeBlock          NodeType = "Block"
	NodeIfStmt         NodeType = "IfStmt"
	NodeWhileStmt      NodeType = "WhileStmt"
	NodeFunctionDecl   NodeType = "FunctionDecl"
	NodeReturnStmt     NodeType = "ReturnStmt"
	NodeClassDecl      NodeType = "ClassDecl"
	NodeProgram        NodeType = "Program"
)

// Node is the root of the syntax tree hierarchy. Trees are strict: every node
// owns its children exclusively and is never mutated after construction.
type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Literals

type NumberLiteral struct {
	nodeImpl
	expressionMarker

	Value float64 `json:"value"`
}

func NewNumberLiteral(value float64) *NumberLiteral {
	return &NumberLiteral{nodeImpl: newNodeImpl(NodeNumberLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type NilLiteral struct {
	nodeImpl
	expressionMarker
}

func NewNilLiteral() *NilLiteral {
	return &NilLiteral{nodeImpl: newNodeImpl(NodeNilLiteral)}
}

// Variables and assignment

// Variable is a reference to a name. The token carries the source position
// reported when the name is unbound.
type Variable struct {
	nodeImpl
	expressionMarker

	Name token.Token `json:"name"`
}

func NewVariable(name token.Token) *Variable {
	return &Variable{nodeImpl: newNodeImpl(NodeVariable), Name: name}
}

// Assign writes a value to an existing binding. Assignment is an expression;
// it evaluates to the assigned value.
type Assign struct {
	nodeImpl
	expressionMarker

	Name  token.Token `json:"name"`
	Value Expression  `json:"value"`
}

func NewAssign(name token.Token, value Expression) *Assign {
	return &Assign{nodeImpl: newNodeImpl(NodeAssign), Name: name, Value: value}
}

// Property access

// Get reads a property from an object, e.g. `point.x`.
type Get struct {
	nodeImpl
	expressionMarker

	Object Expression  `json:"object"`
	Name   token.Token `json:"name"`
}

func NewGet(object Expression, name token.Token) *Get {
	return &Get{nodeImpl: newNodeImpl(NodeGet), Object: object, Name: name}
}

// Set writes a property on an object, e.g. `point.x = 1`. Fields have no
// fixed schema; assignment creates the field when it is absent.
type Set struct {
	nodeImpl
	expressionMarker

	Object Expression  `json:"object"`
	Name   token.Token `json:"name"`
	Value  Expression  `json:"value"`
}

func NewSet(object Expression, name token.Token, value Expression) *Set {
	return &Set{nodeImpl: newNodeImpl(NodeSet), Object: object, Name: name, Value: value}
}

// Operators

type Grouping struct {
	nodeImpl
	expressionMarker

	Expr Expression `json:"expr"`
}

func NewGrouping(expr Expression) *Grouping {
	return &Grouping{nodeImpl: newNodeImpl(NodeGrouping), Expr: expr}
}

// Logical covers `and`/`or`. It is distinct from Binary because the right
// operand must not be evaluated when the left operand decides the result.
type Logical struct {
	nodeImpl
	expressionMarker

	Left     Expression  `json:"left"`
	Operator token.Token `json:"operator"`
	Right    Expression  `json:"right"`
}

func NewLogical(left Expression, operator token.Token, right Expression) *Logical {
	return &Logical{nodeImpl: newNodeImpl(NodeLogical), Left: left, Operator: operator, Right: right}
}

type Unary struct {
	nodeImpl
	expressionMarker

	Operator token.Token `json:"operator"`
	Operand  Expression  `json:"operand"`
}

func NewUnary(operator token.Token, operand Expression) *Unary {
	return &Unary{nodeImpl: newNodeImpl(NodeUnary), Operator: operator, Operand: operand}
}

type Binary struct {
	nodeImpl
	expressionMarker

	Left     Expression  `json:"left"`
	Operator token.Token `json:"operator"`
	Right    Expression  `json:"right"`
}

func NewBinary(left Expression, operator token.Token, right Expression) *Binary {
	return &Binary{nodeImpl: newNodeImpl(NodeBinary), Left: left, Operator: operator, Right: right}
}

// Call invokes a callable value. Paren is the closing parenthesis token,
// used to locate arity and callability errors.
type Call struct {
	nodeImpl
	expressionMarker

	Callee    Expression   `json:"callee"`
	Paren     token.Token  `json:"paren"`
	Arguments []Expression `json:"arguments"`
}

func NewCall(callee Expression, paren token.Token, arguments []Expression) *Call {
	return &Call{nodeImpl: newNodeImpl(NodeCall), Callee: callee, Paren: paren, Arguments: arguments}
}

type This struct {
	nodeImpl
	expressionMarker

	Keyword token.Token `json:"keyword"`
}

func NewThis(keyword token.Token) *This {
	return &This{nodeImpl: newNodeImpl(NodeThis), Keyword: keyword}
}

// Statements

type PrintStmt struct {
	nodeImpl
	statementMarker

	Expr Expression `json:"expr"`
}

func NewPrintStmt(expr Expression) *PrintStmt {
	return &PrintStmt{nodeImpl: newNodeImpl(NodePrintStmt), Expr: expr}
}

type ExpressionStmt struct {
	nodeImpl
	statementMarker

	Expr Expression `json:"expr"`
}

func NewExpressionStmt(expr Expression) *ExpressionStmt {
	return &ExpressionStmt{nodeImpl: newNodeImpl(NodeExpressionStmt), Expr: expr}
}

// VarDecl declares a variable in the current scope. Initializer may be nil,
// in which case the variable starts out as nil.
type VarDecl struct {
	nodeImpl
	statementMarker

	Name        token.Token `json:"name"`
	Initializer Expression  `json:"initializer,omitempty"`
}

func NewVarDecl(name token.Token, initializer Expression) *VarDecl {
	return &VarDecl{nodeImpl: newNodeImpl(NodeVarDecl), Name: name, Initializer: initializer}
}

type Block struct {
	nodeImpl
	statementMarker

	Statements []Statement `json:"statements"`
}

func NewBlock(statements []Statement) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock), Statements: statements}
}

type IfStmt struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Then      Statement  `json:"then"`
	Else      Statement  `json:"else,omitempty"`
}

func NewIfStmt(condition Expression, then Statement, elseBranch Statement) *IfStmt {
	return &IfStmt{nodeImpl: newNodeImpl(NodeIfStmt), Condition: condition, Then: then, Else: elseBranch}
}

type WhileStmt struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Body      Statement  `json:"body"`
}

func NewWhileStmt(condition Expression, body Statement) *WhileStmt {
	return &WhileStmt{nodeImpl: newNodeImpl(NodeWhileStmt), Condition: condition, Body: body}
}

type FunctionDecl struct {
	nodeImpl
	statementMarker

	Name   token.Token   `json:"name"`
	Params []token.Token `json:"params"`
	Body   *Block        `json:"body"`
}

func NewFunctionDecl(name token.Token, params []token.Token, body *Block) *FunctionDecl {
	return &FunctionDecl{nodeImpl: newNodeImpl(NodeFunctionDecl), Name: name, Params: params, Body: body}
}

type ReturnStmt struct {
	nodeImpl
	statementMarker

	Keyword token.Token `json:"keyword"`
	Value   Expression  `json:"value,omitempty"`
}

func NewReturnStmt(keyword token.Token, value Expression) *ReturnStmt {
	return &ReturnStmt{nodeImpl: newNodeImpl(NodeReturnStmt), Keyword: keyword, Value: value}
}

type ClassDecl struct {
	nodeImpl
	statementMarker

	Name       token.Token     `json:"name"`
	Superclass *Variable       `json:"superclass,omitempty"`
	Methods    []*FunctionDecl `json:"methods"`
}

func NewClassDecl(name token.Token, superclass *Variable, methods []*FunctionDecl) *ClassDecl {
	return &ClassDecl{nodeImpl: newNodeImpl(NodeClassDecl), Name: name, Superclass: superclass, Methods: methods}
}

// Program is the root node: the ordered list of top-level declarations.
type Program struct {
	nodeImpl

	Statements []Statement `json:"statements"`
}

func NewProgram(statements []Statement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Statements: statements}
}
