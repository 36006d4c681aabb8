package tools

import "net/http"

// Catalog returns the Darwinbox operations in registration order.
func Catalog() []Operation {
	return []Operation{
		// Employee
		{
			Name:        "get_employee_details",
			Description: "Fetch employee master records. Filters by employee_ids, else last_modified, else employee_no; with no filter returns every employee.",
			Method:      http.MethodPost,
			Path:        "/masterapi/employee",
			Params: []Param{
				{Name: "employee_ids", Type: TypeArray, Items: TypeString, Description: "Employee IDs to fetch"},
				{Name: "last_modified", Type: TypeString, Description: "Only employees modified since this timestamp (dd-mm-yyyy HH:mm:ss)"},
				{Name: "employee_no", Type: TypeString, Description: "Single employee number to fetch"},
			},
			Build: buildEmployeeDetails,
		},
		{
			Name:        "get_employee",
			Description: "Fetch a single employee master record by employee number.",
			Method:      http.MethodPost,
			Path:        "/masterapi/employee",
			Params: []Param{
				{Name: "employee_no", Type: TypeString, Description: "Employee number", Required: true},
			},
			Build: withDatasetKey,
		},
		{
			Name:        "update_employee",
			Description: "Update one employee record through the import API.",
			Method:      http.MethodPost,
			Path:        "/importapi/update",
			Params: []Param{
				{Name: "employee_data", Type: TypeObject, Description: "Employee fields to update, keyed by Darwinbox attribute name", Required: true},
			},
			Build: buildEmployeeUpdate,
		},
		{
			Name:        "get_employee_history",
			Description: "Fetch employee change history between two dates.",
			Method:      http.MethodPost,
			Path:        "/UpdateEmployeeDetails/employeehistory",
			Params: []Param{
				{Name: "from", Type: TypeString, Description: "Start date (dd-mm-yyyy)", Required: true},
				{Name: "to", Type: TypeString, Description: "End date (dd-mm-yyyy)", Required: true},
				{Name: "filter_on_effective_date", Type: TypeNumber, Description: "1 to filter on effective date instead of modification date"},
			},
		},
		{
			Name:        "download_personal_docs",
			Description: "Download an employee's personal documents.",
			Method:      http.MethodPost,
			Path:        "/Employeedocs/downloadPersonalDocs",
			Params: []Param{
				{Name: "employee_no", Type: TypeString, Description: "Employee number", Required: true},
				{Name: "for", Type: TypeString, Description: "Document category to download"},
			},
		},
		{
			Name:        "get_position_master",
			Description: "Fetch position master data.",
			Method:      http.MethodPost,
			Path:        "/orgmasterapi/getpositionMaster",
			Params: []Param{
				{Name: "status", Type: TypeNumber, Description: "Position status filter"},
				{Name: "need_to_hire", Type: TypeNumber, Description: "1 for open positions only"},
				{Name: "employee_nos", Type: TypeArray, Items: TypeString, Description: "Employee numbers occupying the positions"},
			},
		},
		{
			Name:        "get_forms_data",
			Description: "Fetch submitted form data.",
			Method:      http.MethodPost,
			Path:        "/UpdateEmployeeDetails/getformsdata",
			Params: []Param{
				{Name: "form_id", Type: TypeString, Description: "Form ID", Required: true},
				{Name: "type", Type: TypeString, Description: "Response type"},
				{Name: "form_type", Type: TypeString, Description: "Form type"},
				{Name: "from", Type: TypeString, Description: "Start date (dd-mm-yyyy)"},
				{Name: "to", Type: TypeString, Description: "End date (dd-mm-yyyy)"},
			},
		},
		{
			Name:        "get_separation_details",
			Description: "Fetch employee separation details.",
			Method:      http.MethodPost,
			Path:        "/UpdateEmployeeDetails/separationDetails",
			Params: []Param{
				{Name: "separation_status", Type: TypeString, Description: "Separation status filter"},
				{Name: "employee_ids", Type: TypeArray, Items: TypeString, Description: "Employee IDs"},
			},
		},
		{
			Name:        "add_employee",
			Description: "Add employees through the import API.",
			Method:      http.MethodPost,
			Path:        "/importapi/add",
			Params: []Param{
				{Name: "employees", Type: TypeArray, Items: TypeObject, Description: "Employee records keyed by Darwinbox attribute name", Required: true},
			},
		},
		{
			Name:        "deactivate_employee",
			Description: "Deactivate employees through the import API.",
			Method:      http.MethodPost,
			Path:        "/importapi/deactivate",
			Params: []Param{
				{Name: "employees", Type: TypeArray, Items: TypeObject, Description: "Deactivation records (employee_no, date_of_exit, ...)", Required: true},
			},
		},
		{
			Name:        "upload_profile_attachments",
			Description: "Upload an attachment to an employee profile section.",
			Method:      http.MethodPost,
			Path:        "/hrfileApi/profileAttachments",
			Params: []Param{
				{Name: "employee_no", Type: TypeString, Description: "Employee number", Required: true},
				{Name: "section", Type: TypeString, Description: "Profile section", Required: true},
				{Name: "section_attribute", Type: TypeString, Description: "Section attribute", Required: true},
				{Name: "attachment", Type: TypeString, Description: "Base64 encoded file content", Required: true},
			},
		},

		// Attendance
		{
			Name:        "get_monthly_attendance",
			Description: "Fetch monthly attendance for employees.",
			Method:      http.MethodPost,
			Path:        "/AttendanceDataApi/monthly",
			Params: []Param{
				{Name: "emp_number_list", Type: TypeArray, Items: TypeString, Description: "Employee numbers", Required: true},
				{Name: "from_date", Type: TypeString, Description: "Start date (yyyy-mm-dd)"},
				{Name: "to_date", Type: TypeString, Description: "End date (yyyy-mm-dd)"},
				{Name: "month", Type: TypeString, Description: "Month (mm-yyyy)"},
			},
		},
		{
			Name:        "get_daily_attendance",
			Description: "Fetch attendance for a single day.",
			Method:      http.MethodPost,
			Path:        "/AttendanceDataApi/daily",
			Params: []Param{
				{Name: "emp_number_list", Type: TypeArray, Items: TypeString, Description: "Employee numbers", Required: true},
				{Name: "attendance_date", Type: TypeString, Description: "Date (yyyy-mm-dd)", Required: true},
			},
		},
		{
			Name:        "get_attendance_roster",
			Description: "Fetch the daily attendance roster for a date range.",
			Method:      http.MethodPost,
			Path:        "/attendanceDataApi/DailyAttendanceRoster",
			Params: []Param{
				{Name: "emp_number_list", Type: TypeArray, Items: TypeString, Description: "Employee numbers", Required: true},
				{Name: "from_date", Type: TypeString, Description: "Start date (yyyy-mm-dd)", Required: true},
				{Name: "to_date", Type: TypeString, Description: "End date (yyyy-mm-dd)", Required: true},
			},
		},
		{
			Name:        "record_attendance_punches",
			Description: "Record attendance punches.",
			Method:      http.MethodPost,
			Path:        "/AttendancePunchesApi",
			Params: []Param{
				{Name: "attendance", Type: TypeObject, Description: "Punch records keyed by employee number", Required: true},
			},
		},
		{
			Name:        "record_backdated_attendance",
			Description: "Record backdated attendance.",
			Method:      http.MethodPost,
			Path:        "/attendanceDataApi/backdatedattendance",
			Params: []Param{
				{Name: "attendance_data", Type: TypeArray, Items: TypeObject, Description: "Backdated attendance records", Required: true},
			},
		},

		// Leave
		{
			Name:        "approve_leave",
			Description: "Approve or reject a leave request.",
			Method:      http.MethodPost,
			Path:        "/leavesactionapi/leaveaction",
			Params: []Param{
				{Name: "leave_id", Type: TypeString, Description: "Leave request ID", Required: true},
				{Name: "employee_no", Type: TypeString, Description: "Employee number of the approver"},
				{Name: "action", Type: TypeString, Description: "approve or reject", Required: true},
				{Name: "manager_message", Type: TypeString, Description: "Message to the requester"},
			},
		},
		{
			Name:        "get_leave_action_history",
			Description: "Fetch leaves with an action taken in a date range.",
			Method:      http.MethodPost,
			Path:        "/leavesactionapi/leaveActionTakenLeaves",
			Params: []Param{
				{Name: "from", Type: TypeString, Description: "Start date (dd-mm-yyyy)", Required: true},
				{Name: "to", Type: TypeString, Description: "End date (dd-mm-yyyy)", Required: true},
				{Name: "action", Type: TypeString, Description: "Action filter"},
				{Name: "employee_no", Type: TypeArray, Items: TypeString, Description: "Employee numbers"},
				{Name: "unpaid", Type: TypeString, Description: "Unpaid leave filter"},
			},
		},
		{
			Name:        "get_holiday_list",
			Description: "Fetch the holiday list for a year.",
			Method:      http.MethodPost,
			Path:        "/leavesactionapi/holidaylist",
			Params: []Param{
				{Name: "year", Type: TypeString, Description: "Year (yyyy)", Required: true},
				{Name: "employee_no", Type: TypeString, Description: "Employee number whose holiday calendar to use"},
			},
		},
		{
			Name:        "get_leave_balance",
			Description: "Fetch leave balances.",
			Method:      http.MethodPost,
			Path:        "/leavesactionapi/leavebalance",
			Params: []Param{
				{Name: "ignore_rounding", Type: TypeString, Description: "1 to return unrounded balances"},
				{Name: "employee_nos", Type: TypeArray, Items: TypeString, Description: "Employee numbers", Required: true},
				{Name: "leave_names", Type: TypeArray, Items: TypeString, Description: "Leave type names"},
			},
		},
		{
			Name:        "import_leave",
			Description: "Import leave records.",
			Method:      http.MethodPost,
			Path:        "/leavesactionapi/importleave",
			Params: []Param{
				{Name: "data", Type: TypeArray, Items: TypeObject, Description: "Leave records to import", Required: true},
			},
		},
	}
}
