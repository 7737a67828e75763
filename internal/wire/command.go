package wire

// AuthorizationCommand — команды, доступные до установления сессии.
type AuthorizationCommand uint8

const (
	AuthAuthorize AuthorizationCommand = iota + 1
	AuthRegister
	AuthRegisterMaster
	AuthCheckIfLoginExists
)

func (c AuthorizationCommand) String() string {
	switch c {
	case AuthAuthorize:
		return "AUTHORIZE"
	case AuthRegister:
		return "REGISTER"
	case AuthRegisterMaster:
		return "REGISTER_MASTER"
	case AuthCheckIfLoginExists:
		return "CHECK_IF_LOGIN_EXISTS"
	default:
		return "AUTH_UNKNOWN"
	}
}

// Command — операционные команды. Набор закрыт: у каждой команды
// фиксированная последовательность кадров запроса и ровно один кадр ответа.
type Command uint8

const (
	CmdExit Command = iota + 1
	CmdGetAllPurposes
	CmdCreatePurpose
	CmdEditPurpose
	CmdDeletePurpose
	CmdBanClient
	CmdUnbanClient
	CmdBanMaster
	CmdUnbanMaster
	CmdRegisterMaster
	CmdRegisterUser
	CmdGetAllCurrentMasterRecords
	CmdGetAllCurrentClientRecords
	CmdGetAllRecordsNotAccepted
	CmdGetAllRecords
	CmdGetAllRecordsAccepted
	CmdGetAllClients
	CmdGetAllMasters
	CmdAcceptRecordToCurrentMaster
	CmdDeleteRecord
	CmdDeleteAcception
	CmdCreateRecord
	CmdGetCurrentProfile
	CmdEditCurrentProfile
)

func (c Command) String() string {
	switch c {
	case CmdExit:
		return "EXIT"
	case CmdGetAllPurposes:
		return "GET_ALL_PURPOSES"
	case CmdCreatePurpose:
		return "CREATE_PURPOSE"
	case CmdEditPurpose:
		return "EDIT_PURPOSE"
	case CmdDeletePurpose:
		return "DELETE_PURPOSE"
	case CmdBanClient:
		return "BAN_CLIENT"
	case CmdUnbanClient:
		return "UNBAN_CLIENT"
	case CmdBanMaster:
		return "BAN_MASTER"
	case CmdUnbanMaster:
		return "UNBAN_MASTER"
	case CmdRegisterMaster:
		return "REGISTER_MASTER"
	case CmdRegisterUser:
		return "REGISTER_USER"
	case CmdGetAllCurrentMasterRecords:
		return "GET_ALL_CURRENT_MASTER_RECORDS"
	case CmdGetAllCurrentClientRecords:
		return "GET_ALL_CURRENT_CLIENT_RECORDS"
	case CmdGetAllRecordsNotAccepted:
		return "GET_ALL_RECORDS_NOT_ACCEPTED"
	case CmdGetAllRecords:
		return "GET_ALL_RECORDS"
	case CmdGetAllRecordsAccepted:
		return "GET_ALL_RECORDS_ACCEPTED"
	case CmdGetAllClients:
		return "GET_ALL_CLIENTS"
	case CmdGetAllMasters:
		return "GET_ALL_MASTERS"
	case CmdAcceptRecordToCurrentMaster:
		return "ACCEPT_RECORD_TO_CURRENT_MASTER"
	case CmdDeleteRecord:
		return "DELETE_RECORD"
	case CmdDeleteAcception:
		return "DELETE_ACCEPTION"
	case CmdCreateRecord:
		return "CREATE_RECORD"
	case CmdGetCurrentProfile:
		return "GET_CURRENT_PROFILE"
	case CmdEditCurrentProfile:
		return "EDIT_CURRENT_PROFILE"
	default:
		return "UNKNOWN"
	}
}

// Response — итог команды с изменением состояния.
type Response uint8

const (
	ResponseSuccessfully Response = iota + 1
	ResponseFailed
)

func (r Response) String() string {
	switch r {
	case ResponseSuccessfully:
		return "SUCCESSFULLY"
	case ResponseFailed:
		return "FAILED"
	default:
		return "RESPONSE_UNKNOWN"
	}
}
